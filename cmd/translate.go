/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/urduproxy/internal/config"
	"github.com/valpere/urduproxy/internal/detector"
	"github.com/valpere/urduproxy/internal/translator"
	"github.com/valpere/urduproxy/internal/validator"
)

var (
	inputFile string
	noCheck   bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate Urdu text once and print the English result",
	Long: `Translate a single text through the same provider call the server makes.

The text is taken from the argument or, with -i, from a file ("-" for stdin).
Unless --no-check is given, a warning is printed when the input does not look
like Urdu or the output does not look like English.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}
		if text == "" {
			return fmt.Errorf("text is required")
		}

		cfg := config.Load(v)
		if cfg.APIKey == "" {
			return fmt.Errorf("API key not configured: set TRANSLATOR_API_KEY")
		}

		var val *validator.Validator
		if !noCheck {
			val = validator.New(detector.New())
			if err := val.Check(text, translator.SourceLang.String()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: input: %v\n", err)
			}
		}

		svc := translator.NewMicrosoftService(cfg.Timeout)
		result, err := svc.Translate(context.Background(), cfg.Service(), translator.TranslateRequest{Text: text})
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		if val != nil && result.Found {
			if err := val.Check(result.TranslatedText, translator.TargetLang.String()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: output: %v\n", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.TranslatedText)
		return nil
	},
}

func readInput(args []string) (string, error) {
	switch {
	case inputFile != "" && len(args) > 0:
		return "", fmt.Errorf("pass either a text argument or --input, not both")
	case len(args) > 0:
		return args[0], nil
	case inputFile == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	case inputFile != "":
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	default:
		return "", fmt.Errorf("text is required")
	}
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", `Input file to translate ("-" for stdin)`)
	translateCmd.Flags().BoolVar(&noCheck, "no-check", false, "Skip language detection warnings")
}
