package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// printMarkdown renders md for the terminal, unless -raw is set.
func printMarkdown(md string) {
	if !*Raw {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				md = out
			}
		}
	}
	fmt.Fprint(stdout, md)
}

// outputFlags are the output options shared by the reports.
type outputFlags struct {
	json  bool
	query string
}

func (o *outputFlags) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.json, "json", false, "Print the report as JSON.")
	f.StringVar(&o.query, "q", "", "JSONPath query on the JSON report, like '$.buckets[*].closing.amount'. Implies -json.")
}

// print prints v as JSON, or the markdown document otherwise.
func (o *outputFlags) print(v any, markdown func() string) subcommands.ExitStatus {
	if !o.json && o.query == "" {
		printMarkdown(markdown())
		return subcommands.ExitSuccess
	}
	out, err := o.marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s\n", out)
	return subcommands.ExitSuccess
}

func (o *outputFlags) marshal(v any) ([]byte, error) {
	if o.query == "" {
		return json.MarshalIndent(v, "", "  ")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	res, err := jsonpath.Get(o.query, doc)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", o.query, err)
	}
	return json.MarshalIndent(res, "", "  ")
}
