package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"zai-console/internal/console"
	"zai-console/internal/dto"
	"zai-console/utils/apikey"
	"zai-console/utils/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConsoleHandler 終端機版管理後台
type ConsoleHandler struct {
	logger  *zap.Logger
	session *console.Session
	client  *console.Client
}

func NewConsoleHandler(logger *zap.Logger, session *console.Session, client *console.Client) *ConsoleHandler {
	return &ConsoleHandler{
		logger:  logger,
		session: session,
		client:  client,
	}
}

func (handler *ConsoleHandler) Login(cmd *cobra.Command, args []string) error {
	key, _ := cmd.Flags().GetString("key")
	key = strings.TrimSpace(key)
	if !apikey.HasAdminPrefix(key) {
		cmd.Println(console.RenderFailure("登入", "請輸入有效的管理員密鑰（以 admin-sk- 開頭）"))
		return nil
	}

	body, err := handler.client.Auth(cmd.Context(), key)
	if err != nil {
		var apiErr *console.APIError
		if errors.As(err, &apiErr) {
			cmd.Println(console.RenderFailure("登入", "認證失敗，請檢查管理員密鑰"))
		} else {
			handler.logger.Debug("console auth failed", zap.Error(err))
			cmd.Println(console.RenderFailure("登入", "連線失敗，請檢查網路"))
		}
		return nil
	}
	if err := handler.session.Save(key); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	cmd.Println(console.Render(console.TabOverview, body))
	return nil
}

func (handler *ConsoleHandler) Logout(cmd *cobra.Command, args []string) error {
	if err := handler.session.Clear(); err != nil {
		return err
	}
	cmd.Println("已登出")
	return nil
}

// Show 回傳指定分頁的 RunE
func (handler *ConsoleHandler) Show(tab console.Tab) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		key, err := handler.session.Load()
		if err != nil {
			return err
		}
		return handler.show(cmd, key, tab)
	}
}

func (handler *ConsoleHandler) show(cmd *cobra.Command, key string, tab console.Tab) error {
	body, err := handler.client.Dashboard(cmd.Context(), key)
	if err != nil {
		var apiErr *console.APIError
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			_ = handler.session.Clear()
			return errors.New("admin key rejected, please login again")
		}
		return fmt.Errorf("load dashboard: %w", err)
	}
	cmd.Println(console.Render(tab, body))
	return nil
}

func (handler *ConsoleHandler) CreateUser(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	rateLimit, _ := cmd.Flags().GetInt("rate-limit")
	req := dto.CreateUserRequest{Name: strings.TrimSpace(name), RateLimit: rateLimit}
	if err := validate.Struct(&req); err != nil {
		cmd.Println(console.RenderFailure("建立使用者", "請輸入使用者名稱"))
		return nil
	}
	return handler.act(cmd, "建立使用者", func(ctx context.Context, key string) ([]byte, error) {
		return handler.client.CreateUser(ctx, key, req)
	}, console.RenderCreatedUser)
}

func (handler *ConsoleHandler) DeleteUser(cmd *cobra.Command, args []string) error {
	id := args[0]
	if !handler.confirm(cmd, fmt.Sprintf("確定刪除使用者 %q 嗎？", id)) {
		return nil
	}
	return handler.act(cmd, "刪除使用者", func(ctx context.Context, key string) ([]byte, error) {
		return handler.client.DeleteUser(ctx, key, id)
	}, nil)
}

func (handler *ConsoleHandler) RefreshAccount(cmd *cobra.Command, args []string) error {
	id, err := console.ParseAccountID(args[0])
	if err != nil {
		return err
	}
	if !handler.confirm(cmd, "確定要刷新此帳號的 Token 嗎？") {
		return nil
	}
	return handler.act(cmd, "Token 刷新", func(ctx context.Context, key string) ([]byte, error) {
		return handler.client.RefreshAccount(ctx, key, dto.RefreshAccountRequest{AccountID: id})
	}, nil)
}

func (handler *ConsoleHandler) DeleteAccount(cmd *cobra.Command, args []string) error {
	id := args[0]
	if !handler.confirm(cmd, fmt.Sprintf("確定刪除帳號 %q 嗎？", id)) {
		return nil
	}
	return handler.act(cmd, "刪除帳號", func(ctx context.Context, key string) ([]byte, error) {
		return handler.client.DeleteAccount(ctx, key, id)
	}, nil)
}

func (handler *ConsoleHandler) AddAccount(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	token, _ := cmd.Flags().GetString("token")
	discordToken, _ := cmd.Flags().GetString("discord-token")
	req := dto.AddAccountRequest{
		Name:         strings.TrimSpace(name),
		Token:        strings.TrimSpace(token),
		DiscordToken: strings.TrimSpace(discordToken),
	}
	if err := validate.Struct(&req); err != nil {
		cmd.Println(console.RenderFailure("新增帳號", "請填寫名稱與 Token"))
		return nil
	}
	return handler.act(cmd, "新增帳號", func(ctx context.Context, key string) ([]byte, error) {
		return handler.client.AddAccount(ctx, key, req)
	}, nil)
}

func (handler *ConsoleHandler) BrowserLogin(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	req := dto.BrowserLoginRequest{Name: strings.TrimSpace(name)}
	if err := validate.Struct(&req); err != nil {
		cmd.Println(console.RenderFailure("瀏覽器登入", "請輸入帳號名稱"))
		return nil
	}
	return handler.act(cmd, "瀏覽器登入", func(ctx context.Context, key string) ([]byte, error) {
		return handler.client.BrowserLogin(ctx, key, req)
	}, nil)
}

func (handler *ConsoleHandler) SetConfig(cmd *cobra.Command, args []string) error {
	req := dto.UpdateConfigRequest{Key: args[0], Value: console.ParseConfigValue(args[1])}
	return handler.act(cmd, "更新設定", func(ctx context.Context, key string) ([]byte, error) {
		return handler.client.UpdateConfig(ctx, key, req)
	}, nil)
}

type consoleCall func(ctx context.Context, key string) ([]byte, error)

// act 執行寫入操作並顯示結果；成功後重新載入資料
func (handler *ConsoleHandler) act(cmd *cobra.Command, action string, call consoleCall, render func([]byte) (string, bool)) error {
	key, err := handler.session.Load()
	if err != nil {
		return err
	}
	body, err := call(cmd.Context(), key)
	if err != nil {
		handler.logger.Debug("console action failed", zap.String("action", action), zap.Error(err))
		cmd.Println(console.RenderFailure(action, err.Error()))
		return nil
	}
	if render == nil {
		render = func(b []byte) (string, bool) { return console.RenderResult(action, b) }
	}
	out, ok := render(body)
	cmd.Println(out)
	if !ok {
		return nil
	}
	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		return handler.show(cmd, key, console.TabOverview)
	}
	return nil
}

// confirm --yes 直接通過，否則讀取 y/N
func (handler *ConsoleHandler) confirm(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	cmd.Print(prompt + " [y/N]: ")
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		cmd.Println("已取消")
		return false
	}
}
