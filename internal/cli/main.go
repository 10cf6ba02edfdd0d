package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/thomiceli/gists-gone/internal/config"
	"github.com/thomiceli/gists-gone/internal/filter"
	"github.com/thomiceli/gists-gone/internal/gist"
	"github.com/thomiceli/gists-gone/internal/github"
	"github.com/thomiceli/gists-gone/internal/purge"
	"github.com/thomiceli/gists-gone/internal/utils"
	"github.com/urfave/cli/v2"
)

var CmdVersion = cli.Command{
	Name:  "version",
	Usage: "Print the version of gists-gone",
	Action: func(c *cli.Context) error {
		fmt.Println("gists-gone " + config.GistsGoneVersion)
		return nil
	},
}

var CmdPurge = cli.Command{
	Name:  "purge",
	Usage: "Delete the gists matching the filters (all gists if no filter is set)",
	Action: func(ctx *cli.Context) error {
		Initialize(ctx)

		criteria, err := buildCriteria(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		client, err := newClient(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		gists, err := client.ListGists(ctx.Context)
		if err != nil {
			return apiExit(err)
		}

		candidates := filter.Apply(gists, criteria)
		report, err := purge.Run(ctx.Context, client, candidates, purge.Options{
			Force:  ctx.Bool("force"),
			DryRun: ctx.Bool("dry-run"),
			In:     os.Stdin,
			Out:    os.Stdout,
		})
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		log.Info().Int("deleted", report.Deleted).Int("failed", report.Failed).Msg("Purge finished")
		return nil
	},
}

var CmdList = cli.Command{
	Name:  "list",
	Usage: "List the gists matching the filters without deleting anything",
	Action: func(ctx *cli.Context) error {
		Initialize(ctx)

		criteria, err := buildCriteria(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		client, err := newClient(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		gists, err := client.ListGists(ctx.Context)
		if err != nil {
			return apiExit(err)
		}

		candidates := filter.Apply(gists, criteria)
		purge.List(os.Stdout, candidates)
		fmt.Printf("%d gists matched.\n", len(candidates))
		return nil
	},
}

var ConfigFlag = cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to a config file in YAML format",
}

var TokenFlag = cli.StringFlag{
	Name:    "token",
	Aliases: []string{"t"},
	Usage:   "Your GitHub API access token",
}

var LanguagesFlag = cli.StringSliceFlag{
	Name:    "languages",
	Aliases: []string{"l"},
	Usage:   "Only gists in these languages (exact match, \"Unknown\" selects gists with no detectable language)",
}

var VisibilityFlag = cli.StringFlag{
	Name:    "visibility",
	Aliases: []string{"v"},
	Usage:   "Only public or private gists (\"secret\" is accepted as an alias for private)",
}

var DateRangeFlag = cli.StringSliceFlag{
	Name:    "date-range",
	Aliases: []string{"dr"},
	Usage:   "Only gists created on a date (one YYYY-MM-DD value) or within an inclusive range (two values)",
}

var ForceFlag = cli.BoolFlag{
	Name:    "force",
	Aliases: []string{"f"},
	Usage:   "Don't ask for confirmation before deleting gists. Use with caution",
}

var DryRunFlag = cli.BoolFlag{
	Name:  "dry-run",
	Usage: "Show what would be deleted without deleting anything",
}

func App() error {
	app := cli.NewApp()
	app.Name = "gists-gone"
	app.Usage = "Bulk delete your GitHub gists from the command-line."
	app.HelpName = "gists-gone"

	app.Commands = []*cli.Command{&CmdVersion, &CmdPurge, &CmdList}
	app.DefaultCommand = CmdPurge.Name
	app.Flags = []cli.Flag{
		&ConfigFlag,
		&TokenFlag,
		&LanguagesFlag,
		&VisibilityFlag,
		&DateRangeFlag,
		&ForceFlag,
		&DryRunFlag,
	}
	return app.Run(os.Args)
}

func Initialize(ctx *cli.Context) {
	if err := config.InitConfig(ctx.String("config")); err != nil {
		panic(err)
	}

	config.InitLog()
}

type argsDTO struct {
	Visibility string   `validate:"omitempty,oneof=public private secret"`
	DateRange  []string `validate:"max=2,dive,dateonly"`
}

// buildCriteria validates the filter flags and turns them into a Criteria.
// Malformed arguments are fatal here, before any network call.
func buildCriteria(ctx *cli.Context) (filter.Criteria, error) {
	var criteria filter.Criteria

	dto := argsDTO{
		Visibility: ctx.String("visibility"),
		DateRange:  ctx.StringSlice("date-range"),
	}
	if err := utils.NewValidator().Validate(dto); err != nil {
		return criteria, errors.New(utils.ValidationMessages(&err))
	}

	criteria.Languages = ctx.StringSlice("languages")

	if dto.Visibility != "" {
		visibility, err := gist.ParseVisibility(dto.Visibility)
		if err != nil {
			return criteria, err
		}
		criteria.Visibility = &visibility
	}

	dates, err := filter.ParseDateRange(dto.DateRange)
	if err != nil {
		return criteria, err
	}
	criteria.Dates = dates

	return criteria, nil
}

func newClient(ctx *cli.Context) (*github.Client, error) {
	token := ctx.String("token")
	if token == "" {
		token = os.Getenv(config.C.GithubTokenEnv)
	}
	if token == "" {
		return nil, fmt.Errorf("please pass your GitHub API token to the --token option or set the %s environment variable", config.C.GithubTokenEnv)
	}
	return github.NewClient(token), nil
}

func apiExit(err error) error {
	if errors.Is(err, github.ErrBadCredentials) {
		log.Error().Err(err).Msg("Authentication failed")
	} else {
		log.Error().Err(err).Msg("GitHub API error")
	}
	return cli.Exit(err.Error(), 1)
}
