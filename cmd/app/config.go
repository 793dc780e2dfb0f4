package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"zai-console/config"
	"zai-console/utils/path"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	rootPath = path.RootPath()
	envPath  string
	yamlPath string
	conf     *config.Configuration
)

func registerFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&envPath, "env", "e", "", "Environment file, e.g. --env .env")
	fs.StringVarP(&yamlPath, "config", "c", "", "YAML config file, e.g. --config config.yaml")
}

// initConfig 設定來源優先序：--env > --config > 工作目錄 .env，環境變數永遠可覆寫
// key 以 "__" 分層，例如 WORKER__TIMEOUT
func initConfig() {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	file, kind := configFile()
	if file != "" {
		fmt.Fprintf(os.Stderr, "load %s config: %s\n", kind, file)
		v.SetConfigFile(file)
		v.SetConfigType(kind)
		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("read config failed: %w", err))
		}
		v.WatchConfig()
		v.OnConfigChange(func(in fsnotify.Event) {
			fmt.Fprintln(os.Stderr, "config file changed:", in.Name)
			if err := v.Unmarshal(&conf); err != nil {
				fmt.Fprintln(os.Stderr, "unmarshal on change failed:", err)
			}
		})
	} else {
		loadDotEnv()
	}

	bindEnvs(v, reflect.TypeOf(config.Configuration{}))
	if err := v.Unmarshal(&conf); err != nil {
		fmt.Fprintln(os.Stderr, "unmarshal config failed:", err)
	}
	if conf == nil {
		conf = &config.Configuration{}
	}
}

func configFile() (file, kind string) {
	if envPath != "" && yamlPath != "" {
		fmt.Fprintln(os.Stderr, "同時指定 --env 與 --config，將以 --env 優先")
	}
	switch {
	case envPath != "":
		return absFrom(rootPath, envPath), "env"
	case yamlPath != "":
		return absFrom(filepath.Join(rootPath, "conf"), yamlPath), "yaml"
	}
	return "", ""
}

func absFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// loadDotEnv 工作目錄的 .env 只補上尚未設定的環境變數，不存在不算錯
func loadDotEnv() {
	err := godotenv.Load()
	switch {
	case err == nil:
		fmt.Fprintln(os.Stderr, "load .env from working directory")
	case !errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(os.Stderr, "load .env failed:", err)
	}
}

// bindEnvs 讓 AutomaticEnv 也能對應到巢狀結構欄位
func bindEnvs(v *viper.Viper, t reflect.Type, prefix ...string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		key := append(append([]string{}, prefix...), tag)

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			bindEnvs(v, ft, key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "__"))
	}
}
