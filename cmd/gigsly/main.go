// Command gigsly is the terminal client for the Gigsly marketplace.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

// Version is set via ldflags during release builds.
var Version = "dev"

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gigsly:", err)
		os.Exit(1)
	}
}

// sources chains an environment variable with a key of the TOML config file.
func sources(envKey, tomlKey string, tomlSrc altsrc.Sourcer) cli.ValueSourceChain {
	chain := cli.EnvVars(envKey)
	chain.Chain = append(chain.Chain, toml.TOML(tomlKey, tomlSrc))
	return chain
}

func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gigsly", "config.toml")
}

func newCommand() *cli.Command {
	var configFile string
	tomlSrc := altsrc.NewStringPtrSourcer(&configFile)

	return &cli.Command{
		Name:    "gigsly",
		Usage:   "Find help or find work on the Gigsly marketplace",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       defaultConfigFile(),
				Usage:       "Path to the TOML configuration file",
				Destination: &configFile,
				Sources:     cli.EnvVars("GIGSLY_CONFIG"),
			},
			&cli.StringFlag{
				Name:    flagAPIURL,
				Usage:   "Backend base URL (without /api)",
				Sources: sources("GIGSLY_API_BASE_URL", "api.base_url", tomlSrc),
			},
			&cli.StringFlag{
				Name:    flagStore,
				Usage:   "Session store: file, memory or redis",
				Sources: sources("GIGSLY_STORE_DRIVER", "store.driver", tomlSrc),
			},
			&cli.StringFlag{
				Name:    flagStoreDir,
				Usage:   "Directory of the file session store",
				Sources: sources("GIGSLY_STORE_DIR", "store.dir", tomlSrc),
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "Log level: trace, debug, info, warn, error, off",
				Sources: sources("LOG_LEVEL", "log.level", tomlSrc),
			},
			&cli.BoolFlag{
				Name:  flagJSON,
				Usage: "Print results as JSON",
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			signupCommand(),
			logoutCommand(),
			whoamiCommand(),
			openCommand(),
			canCommand(),
			actionsCommand(),
			tasksCommand(),
			findWorkCommand(),
			postTaskCommand(),
			myTasksCommand(),
			taskStatusCommand(),
			applyCommand(),
			myProposalsCommand(),
			taskProposalsCommand(),
			proposalDecisionCommand("accept", "Accept a proposal on one of your tasks", "ACCEPTED"),
			proposalDecisionCommand("reject", "Reject a proposal on one of your tasks", "REJECTED"),
			proposalDecisionCommand("withdraw", "Withdraw one of your proposals", "WITHDRAWN"),
			feedbackCommand(),
			profileCommand(),
			professionalsCommand(),
			categoriesCommand(),
			contactCommand(),
			shellCommand(),
		},
	}
}
