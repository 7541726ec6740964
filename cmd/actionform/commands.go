package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-actionform/pkg/orchestrator"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/renderers/tui"
	"github.com/goliatone/go-actionform/pkg/validation"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the actions found in the definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := a.definitions(cmd.Context())
			if err != nil {
				return err
			}
			for _, def := range defs {
				if def.Name != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", def.ID, def.Name)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), def.ID)
			}
			return nil
		},
	}
}

func (a *app) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [action-id]",
		Short: "Render the form of an action",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			actionURL, _ := cmd.Flags().GetString("action-url")
			locale, _ := cmd.Flags().GetString("locale")
			csrfField, _ := cmd.Flags().GetString("csrf-field")
			csrfToken, _ := cmd.Flags().GetString("csrf-token")

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}

			req := a.request(args)
			req.Renderer = a.v.GetString("renderer")
			req.RenderOptions = render.RenderOptions{Action: actionURL, Locale: locale}
			if csrfToken != "" {
				req.RenderOptions.Hidden = render.MergeHiddenFields(nil, render.CSRFToken(csrfField, csrfToken))
			}

			out, err := orch.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return fmt.Errorf("render: write output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().String("renderer", "vanilla", "renderer to use (vanilla, json)")
	cmd.Flags().String("output", "", "output file (stdout if empty)")
	cmd.Flags().String("action-url", "", "URL the rendered form submits to")
	cmd.Flags().String("locale", "", "locale used for form chrome")
	cmd.Flags().String("csrf-field", "_csrf", "hidden input name for the CSRF token")
	cmd.Flags().String("csrf-token", "", "CSRF token embedded as a hidden input")
	_ = a.v.BindPFlag("renderer", cmd.Flags().Lookup("renderer"))
	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [action-id]",
		Short: "Print the validation schema of an action",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			prepared, err := orch.Prepare(cmd.Context(), a.request(args))
			if err != nil {
				return err
			}

			switch format {
			case "openapi":
				return writeJSON(cmd.OutOrStdout(), prepared.Schema.OpenAPI())
			case "rules":
				return writeJSON(cmd.OutOrStdout(), prepared.Schema)
			default:
				return fmt.Errorf("schema: unsupported format %q", format)
			}
		},
	}

	cmd.Flags().String("format", "openapi", "output format (openapi, rules)")
	return cmd
}

type validateOutput struct {
	Valid      bool                `json:"valid"`
	Values     map[string]any      `json:"values,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"formErrors,omitempty"`
}

func (a *app) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [action-id]",
		Short: "Validate submitted values against an action",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("values")

			values, err := a.readValues(path)
			if err != nil {
				return err
			}

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}

			result, submitErr := orch.Submit(cmd.Context(), a.request(args), values)
			if submitErr != nil && !errors.Is(submitErr, orchestrator.ErrInvalidSubmission) {
				return submitErr
			}

			out := validateOutput{
				Valid:      result.Result.Valid,
				Errors:     result.Errors.Fields,
				FormErrors: result.Errors.Form,
			}
			if out.Valid {
				out.Values = result.Values
			}
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			return submitErr
		},
	}

	cmd.Flags().String("values", "-", "JSON file holding the submitted values, - for stdin")
	return cmd
}

func (a *app) readValues(path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("validate: read values: %w", err)
	}

	values := map[string]any{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("validate: decode values: %w", err)
	}
	return values, nil
}

func (a *app) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [action-id]",
		Short: "Check field settings against action parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := a.definitions(cmd.Context())
			if err != nil {
				return err
			}

			var (
				out      = cmd.OutOrStdout()
				errCount int
				warnings int
				linted   int
			)
			for _, def := range defs {
				if len(args) > 0 && def.ID != args[0] {
					continue
				}
				linted++

				result := validation.ValidateSettings(def.Parameters, def.Fields)
				if len(result.Issues) == 0 {
					fmt.Fprintf(out, "%s %s\n", color.GreenString("ok"), def.ID)
					continue
				}

				fmt.Fprintln(out, def.ID)
				for _, issue := range result.Issues {
					label := color.New(color.FgRed).Sprint("error")
					if issue.Severity == validation.SeverityWarning {
						label = color.New(color.FgYellow).Sprint("warning")
						warnings++
					} else {
						errCount++
					}
					fmt.Fprintf(out, "  %s %s: %s\n", label, issue.Path, issue.Message)
				}
			}

			if len(args) > 0 && linted == 0 {
				return fmt.Errorf("%w: %q", orchestrator.ErrActionNotFound, args[0])
			}
			fmt.Fprintf(out, "%d action(s), %d error(s), %d warning(s)\n", linted, errCount, warnings)
			if errCount > 0 {
				return fmt.Errorf("lint: %d error(s) found", errCount)
			}
			return nil
		},
	}
}

func (a *app) promptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt [action-id]",
		Short: "Fill in an action form interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			options := []tui.Option{
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithOutputFormat(tui.OutputFormat(format)),
			}
			if a.driver != nil {
				options = append(options, tui.WithPromptDriver(a.driver))
			}
			renderer, err := tui.New(options...)
			if err != nil {
				return err
			}

			orch, err := a.orchestrator(
				orchestrator.WithRegistry(render.NewRegistry(renderer)),
				orchestrator.WithDefaultRenderer(renderer.Name()),
			)
			if err != nil {
				return err
			}

			out, err := orch.Generate(cmd.Context(), a.request(args))
			if err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return errors.New("prompt: aborted")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
			return nil
		},
	}

	cmd.Flags().String("format", string(tui.OutputFormatJSON), "output format (json, form, pretty)")
	return cmd
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
