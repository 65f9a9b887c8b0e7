package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockchart/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config":        predict.Files("*.toml"),
		"eodhd-api-key": predict.Something,
	},
	Sub: map[string]*complete.Command{
		"chart": {Flags: withRange(map[string]complete.Predictor{
			"o":      predict.Files("*.pdf"),
			"labels": predict.Nothing,
		})},
		"summary": {Flags: withRange(map[string]complete.Predictor{"raw": predict.Nothing})},
		"events": {Flags: withRange(map[string]complete.Predictor{
			"country": predict.Set{"United States", "China"},
			"raw":     predict.Nothing,
		})},
		"fetch":  {Flags: withRange(nil), Args: predict.Something},
		"search": {Args: predict.Something},
		"topic":  {Flags: map[string]complete.Predictor{"raw": predict.Nothing}, Args: predict.Set{"config", "events", "providers", "*"}},
	},
}

// withRange adds the configuration override flags to flags.
func withRange(flags map[string]complete.Predictor) map[string]complete.Predictor {
	if flags == nil {
		flags = make(map[string]complete.Predictor)
	}
	flags["from"] = predict.Something
	flags["to"] = predict.Something
	flags["events"] = predict.Files("*.csv")
	flags["provider"] = predict.Set{"eodhd", "yahoo"}
	return flags
}

func main() {
	name := path.Base(os.Args[0])
	// exits when invoked by the shell to complete a command line.
	completion.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
