package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

var (
	askModel string
	askJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Answer a question from the uploaded documents using the local
Ollama model. Multiple arguments are joined into one question, so
quoting is optional.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "Ollama model override")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := assistant(cmd)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")

	answer, err := svc.Ask(cmd.Context(), question, askModel)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			cmd.Printf("  - %s (chunk %d)\n", src.Source, src.Chunk)
		}
	}

	return nil
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	type sourceOut struct {
		Source string `json:"source"`
		Chunk  int    `json:"chunk"`
	}
	out := struct {
		Answer  string      `json:"answer"`
		Sources []sourceOut `json:"sources"`
	}{
		Answer:  answer.Text,
		Sources: make([]sourceOut, 0, len(answer.Sources)),
	}
	for _, src := range answer.Sources {
		out.Sources = append(out.Sources, sourceOut{Source: src.Source, Chunk: src.Chunk})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
