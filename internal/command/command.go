package command

import (
	"zai-console/internal/console"
	commandHandler "zai-console/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewConsoleHandler,
	console.NewSession,
	console.NewClient,
)

type Command struct {
	consoleCommandHandler *commandHandler.ConsoleHandler
}

// NewCommand .
func NewCommand(
	consoleCommandHandler *commandHandler.ConsoleHandler,
) *Command {
	return &Command{
		consoleCommandHandler: consoleCommandHandler,
	}
}

type handlerFunc func(h *commandHandler.ConsoleHandler) func(cmd *cobra.Command, args []string) error

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(newConsoleCommand(newCmd))
}

// run 每個子命令各自建立依賴，結束時釋放
func run(newCmd func() (*Command, func(), error), fn handlerFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		command, cleanup, err := newCmd()
		if err != nil {
			return err
		}
		defer cleanup()

		return fn(command.consoleCommandHandler)(cmd, args)
	}
}

func newConsoleCommand(newCmd func() (*Command, func(), error)) *cobra.Command {
	root := &cobra.Command{
		Use:   "console",
		Short: "terminal admin console for the Worker API",
	}
	root.PersistentFlags().BoolP("yes", "y", false, "skip confirmation prompts")
	root.PersistentFlags().Bool("refresh", false, "reload the overview after a successful action")

	login := &cobra.Command{
		Use:   "login",
		Short: "verify an admin key and cache it locally",
		Args:  cobra.NoArgs,
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.Login }),
	}
	login.Flags().StringP("key", "k", "", "admin key (admin-sk-...)")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "forget the cached admin key",
		Args:  cobra.NoArgs,
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.Logout }),
	}
	root.AddCommand(login, logout)

	root.AddCommand(
		tabCommand(newCmd, console.TabOverview, "show the overview"),
		tabCommand(newCmd, console.TabLogs, "show the 50 most recent logs"),
		usersCommand(newCmd),
		accountsCommand(newCmd),
		configCommand(newCmd),
	)
	return root
}

// tabCommand 不帶子命令時顯示對應分頁
func tabCommand(newCmd func() (*Command, func(), error), tab console.Tab, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(tab),
		Short: short,
		Args:  cobra.NoArgs,
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.Show(tab) }),
	}
}

func usersCommand(newCmd func() (*Command, func(), error)) *cobra.Command {
	users := tabCommand(newCmd, console.TabUsers, "list or manage API users")

	create := &cobra.Command{
		Use:   "create",
		Short: "create a user (the full API key is shown once)",
		Args:  cobra.NoArgs,
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.CreateUser }),
	}
	create.Flags().String("name", "", "user name")
	create.Flags().Int("rate-limit", 100, "requests per hour")

	remove := &cobra.Command{
		Use:   "delete ID",
		Short: "delete a user",
		Args:  cobra.ExactArgs(1),
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.DeleteUser }),
	}

	users.AddCommand(create, remove)
	return users
}

func accountsCommand(newCmd func() (*Command, func(), error)) *cobra.Command {
	accounts := tabCommand(newCmd, console.TabAccounts, "list or manage upstream accounts")

	refresh := &cobra.Command{
		Use:   "refresh ID",
		Short: "refresh the account token",
		Args:  cobra.ExactArgs(1),
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.RefreshAccount }),
	}

	remove := &cobra.Command{
		Use:   "delete ID",
		Short: "delete an account",
		Args:  cobra.ExactArgs(1),
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.DeleteAccount }),
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "add an account with a token",
		Args:  cobra.NoArgs,
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.AddAccount }),
	}
	add.Flags().String("name", "", "account name")
	add.Flags().String("token", "", "account token")
	add.Flags().String("discord-token", "", "discord token (optional)")

	login := &cobra.Command{
		Use:   "login",
		Short: "start a browser login on the worker",
		Args:  cobra.NoArgs,
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.BrowserLogin }),
	}
	login.Flags().String("name", "", "account name")

	accounts.AddCommand(refresh, remove, add, login)
	return accounts
}

func configCommand(newCmd func() (*Command, func(), error)) *cobra.Command {
	conf := tabCommand(newCmd, console.TabConfig, "show or update system settings")
	conf.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "update one setting (VALUE is parsed as JSON when possible)",
		Args:  cobra.ExactArgs(2),
		RunE:  run(newCmd, func(h *commandHandler.ConsoleHandler) func(*cobra.Command, []string) error { return h.SetConfig }),
	})
	return conf
}
