package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/stockchart/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	raw bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "prints a documentation topic" }
func (*topicCmd) Usage() string {
	return `stockchart topic [-raw] [<topic>...]

  Prints the documentation topics. Without a topic, prints the list of topics.
  '*' prints every topic.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of rendering it for the terminal.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	md := docs.Index()
	if f.NArg() > 0 {
		var err error
		if md, err = docs.GetTopics(f.Args()...); err != nil {
			return fail("%v", err)
		}
	}
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
