package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	configcreate "github.com/hmehta/acdsc/internal/actions/config/create"
	configdescribe "github.com/hmehta/acdsc/internal/actions/config/describe"
	configget "github.com/hmehta/acdsc/internal/actions/config/get"
	configset "github.com/hmehta/acdsc/internal/actions/config/set"
	configshow "github.com/hmehta/acdsc/internal/actions/config/show"
	configvalidate "github.com/hmehta/acdsc/internal/actions/config/validate"
	entryadd "github.com/hmehta/acdsc/internal/actions/entry/add"
	entryremove "github.com/hmehta/acdsc/internal/actions/entry/remove"
	"github.com/hmehta/acdsc/internal/actions/install"
	serverdaemon "github.com/hmehta/acdsc/internal/actions/server/daemon"
	serverrestart "github.com/hmehta/acdsc/internal/actions/server/restart"
	serverstart "github.com/hmehta/acdsc/internal/actions/server/start"
	serverstatus "github.com/hmehta/acdsc/internal/actions/server/status"
	serverstop "github.com/hmehta/acdsc/internal/actions/server/stop"
	sessionadd "github.com/hmehta/acdsc/internal/actions/session/add"
	sessionremove "github.com/hmehta/acdsc/internal/actions/session/remove"
	weatheradd "github.com/hmehta/acdsc/internal/actions/weather/add"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

func Run(args []string) {
	logPath := ""

	app := NewApp(&logPath)

	err := app.Run(args)
	if err != nil {
		fmt.Println(err)
		if logPath != "" {
			fmt.Println("See details in log file: " + logPath)
		}
		log.Fatal(err)
	}
}

// NewApp builds the command tree. The path of the log file opened for the
// invocation is stored in logPath.
//
//nolint:funlen
func NewApp(logPath *string) *cli.App {
	sectionFlag := &cli.StringFlag{
		Name:    "section",
		Aliases: []string{"s"},
		Value:   "SERVER",
		Usage:   "section of the setting, e.g. RACE, WEATHER_0, CAR_3",
	}
	setFlag := &cli.StringSliceFlag{
		Name:  "set",
		Usage: "override a setting, key=value",
	}

	return &cli.App{
		Name:      "acdsc",
		Usage:     "Assetto Corsa Dedicated Server Control",
		UsageText: "acdsc [--config FILE] command [command options]",
		Before: func(context *cli.Context) error {
			var err error
			context.Context, err = contextInternal.SetConfigContext(context.Context, context.String("config"))
			if err != nil {
				return err
			}

			cfg := contextInternal.ConfigFromContext(context.Context)

			*logPath, err = setupLog(cfg.LogDir)
			if err != nil {
				return err
			}

			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "acdsc configuration file (default: ~/.acdsc/acdsc.yaml)",
				EnvVars: []string{"ACDSC_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:        "server",
				Aliases:     []string{"s"},
				Description: "Dedicated server process actions",
				Usage:       "Dedicated server process actions",
				Subcommands: []*cli.Command{
					{
						Name:        "start",
						Description: "Start server in the background",
						Usage:       "Start server in the background",
						Action:      serverstart.Handle,
					},
					{
						Name:        "stop",
						Description: "Stop server",
						Usage:       "Stop server",
						Action:      serverstop.Handle,
					},
					{
						Name:        "restart",
						Aliases:     []string{"r"},
						Description: "Restart server",
						Usage:       "Restart server",
						Action:      serverrestart.Handle,
					},
					{
						Name:        "status",
						Description: "Show server status",
						Usage:       "Show server status",
						Action:      serverstatus.Handle,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "check",
								Usage: "exit with an error when the server is not running",
							},
						},
					},
					{
						Name:   "daemon",
						Usage:  "Run server in the foreground as the supervised daemon",
						Hidden: true,
						Action: serverdaemon.Handle,
					},
				},
			},
			{
				Name:        "install",
				Aliases:     []string{"update", "i"},
				Description: "Install or update the dedicated server with SteamCMD",
				Usage:       "Install or update the dedicated server with SteamCMD",
				Action:      install.Handle,
			},
			{
				Name:        "config",
				Aliases:     []string{"c"},
				Description: "Server configuration actions",
				Usage:       "Server configuration actions",
				Subcommands: []*cli.Command{
					{
						Name:        "init",
						Description: "Write default server_cfg.ini and entry_list.ini",
						Usage:       "Write default server_cfg.ini and entry_list.ini",
						Action:      configcreate.Handle,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "overwrite existing configuration, a backup is kept",
							},
							&cli.BoolFlag{
								Name:  "generate-passwords",
								Usage: "generate server and admin passwords",
							},
							&cli.IntFlag{
								Name:  "slots",
								Usage: "number of entry list slots (default: MAX_CLIENTS)",
							},
						},
					},
					{
						Name:   "show",
						Usage:  "Print server configuration",
						Action: configshow.Handle,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "entry-list",
								Usage: "print entry_list.ini instead",
							},
						},
					},
					{
						Name:      "get",
						Usage:     "Print a setting",
						ArgsUsage: "KEY",
						Action:    configget.Handle,
						Flags:     []cli.Flag{sectionFlag},
					},
					{
						Name:      "set",
						Usage:     "Change a setting",
						ArgsUsage: "KEY VALUE",
						Action:    configset.Handle,
						Flags: []cli.Flag{
							sectionFlag,
							&cli.BoolFlag{
								Name:  "unset",
								Usage: "store the key without a value",
							},
						},
					},
					{
						Name:   "validate",
						Usage:  "Validate server configuration",
						Action: configvalidate.Handle,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "skip-content",
								Usage: "do not check cars and tracks installed on the server",
							},
						},
					},
					{
						Name:   "describe",
						Usage:  "List known settings with defaults",
						Action: configdescribe.Handle,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "family",
								Usage: "server, session, weather or entry",
							},
						},
					},
				},
			},
			{
				Name:  "session",
				Usage: "Session actions",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a session block",
						ArgsUsage: "BOOK|PRACTICE|QUALIFY|RACE",
						Action:    sessionadd.Handle,
						Flags:     []cli.Flag{setFlag},
					},
					{
						Name:      "remove",
						Usage:     "Remove a session block",
						ArgsUsage: "BOOK|PRACTICE|QUALIFY|RACE",
						Action:    sessionremove.Handle,
					},
				},
			},
			{
				Name:  "weather",
				Usage: "Weather actions",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a weather block",
						Action: weatheradd.Handle,
						Flags:  []cli.Flag{setFlag},
					},
				},
			},
			{
				Name:  "entry",
				Usage: "Entry list actions",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add an entry list slot",
						Action: entryadd.Handle,
						Flags:  []cli.Flag{setFlag},
					},
					{
						Name:      "remove",
						Usage:     "Remove an entry list slot",
						ArgsUsage: "CAR_N",
						Action:    entryremove.Handle,
					},
				},
			},
		},
	}
}

func setupLog(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.WithMessage(err, "failed to create log directory")
	}

	logname := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(dir, logname)

	logFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return "", errors.WithMessage(err, "failed to open log file")
	}

	log.SetOutput(logFile)

	return path, nil
}
