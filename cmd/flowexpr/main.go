// Command flowexpr evaluates, renders and migrates message templates from
// the command line. Context variables are loaded from a YAML file of nested
// maps, the same shape callers pass to data.NewContext.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-flowexpr"
	"github.com/robbyt/go-flowexpr/platform/data"
	"github.com/robbyt/go-flowexpr/platform/types"
)

var (
	contextFile string
	timezone    string
	monthFirst  bool
	urlEncode   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowexpr",
		Short: "Evaluate, render and migrate message template expressions",
	}

	rootCmd.PersistentFlags().StringVarP(&contextFile, "context", "c", "", "YAML file of context variables")
	rootCmd.PersistentFlags().StringVarP(&timezone, "timezone", "z", "UTC", "timezone for date values")
	rootCmd.PersistentFlags().BoolVar(&monthFirst, "month-first", false, "read ambiguous dates month-first")

	renderCmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template against the context",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().BoolVar(&urlEncode, "url-encode", false, "percent-encode substituted values")

	evalCmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a single expression against the context",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate <template>",
		Short: "Rewrite legacy template syntax into canonical form",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), flowexpr.Migrate(args[0]))
		},
	}

	rootCmd.AddCommand(renderCmd, evalCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	env, err := buildContext()
	if err != nil {
		return err
	}

	output, errs := flowexpr.Render(args[0], env, urlEncode)
	fmt.Fprintln(cmd.OutOrStdout(), output)
	for _, msg := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", msg)
	}
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	env, err := buildContext()
	if err != nil {
		return err
	}

	value, err := flowexpr.Evaluate(args[0], env)
	if err != nil {
		return err
	}

	text, err := types.ToString(value, env.Timezone())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// buildContext loads the variable file (if any) and assembles the evaluation
// context from the global flags.
func buildContext() (*data.Context, error) {
	variables := map[string]any{}

	if contextFile != "" {
		content, err := os.ReadFile(contextFile)
		if err != nil {
			return nil, fmt.Errorf("reading context file: %w", err)
		}
		if err := yaml.Unmarshal(content, &variables); err != nil {
			return nil, fmt.Errorf("parsing context file: %w", err)
		}
	}

	tz, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", timezone)
	}

	style := types.DayFirst
	if monthFirst {
		style = types.MonthFirst
	}

	return data.NewContext(variables, tz, style), nil
}
