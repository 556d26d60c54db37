package cmd

import (
	"flag"

	"github.com/etnz/cashflow/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the flags and subcommands of c for shell completion.
func Completion(c *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictors(top),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		cc := &complete.Command{Flags: predictors(fs)}
		if sub.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			cc.Args = predict.Set(topics)
		}
		root.Sub[sub.Name()] = cc
	})
	return root
}

var periods = predict.Set{"day", "week", "month", "quarter", "year"}

func predictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		switch f.Name {
		case "book":
			m[f.Name] = predict.Files("*.jsonl")
		case "config":
			m[f.Name] = predict.Files("*.toml")
		case "p", "g":
			m[f.Name] = periods
		case "method":
			m[f.Name] = predict.Set{"indirect", "direct"}
		case "status":
			m[f.Name] = predict.Set{"pending", "reconciled", "scheduled", "overdue"}
		default:
			m[f.Name] = predict.Something
		}
	})
	return m
}
