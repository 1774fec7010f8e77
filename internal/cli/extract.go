package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roboco-io/ppr2docx/internal/compiler"
	"github.com/roboco-io/ppr2docx/internal/ir"
	"github.com/roboco-io/ppr2docx/internal/preview"
)

var (
	extractInput       string
	extractOutput      string
	extractFormat      string
	extractPrettyPrint bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "ppr 문서에서 IR(중간 표현) 추출",
	Long: `ppr 문서를 분석하여 IR(Intermediate Representation)을 추출합니다.

Word 문서를 만들지 않고 분석 결과만 출력합니다.
출력 형식은 JSON, 텍스트(요약), Markdown, HTML을 지원합니다.

예시:
  ppr2docx extract -i story.ppr
  ppr2docx extract -i story.ppr -o story.json
  ppr2docx extract story.ppr --format text
  ppr2docx extract story.ppr --format html -o story.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "input", "i", "", "입력 ppr 파일 경로")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "출력 형식 (json, text, markdown, html)")
	extractCmd.Flags().BoolVar(&extractPrettyPrint, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	input, err := inputPath(extractInput, args)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	doc, err := compiler.CompileFile(input, cfg.LexerOptions())
	if err != nil {
		return fmt.Errorf("문서 분석 실패: %w", err)
	}

	output, err := formatOutput(doc, extractFormat)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	if extractOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	if err := os.WriteFile(extractOutput, []byte(output), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if !quiet {
		color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "IR 추출 완료: %s\n", extractOutput)
	}
	return nil
}

func formatOutput(doc *ir.Document, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if extractPrettyPrint {
			data, err = json.MarshalIndent(doc, "", "  ")
		} else {
			data, err = json.Marshal(doc)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return preview.Text(doc), nil

	case "markdown", "md":
		return preview.Markdown(doc), nil

	case "html":
		return preview.HTML(doc)

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}
