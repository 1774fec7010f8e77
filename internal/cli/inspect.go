package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roboco-io/ppr2docx/internal/docx"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.docx>",
	Short: "변환된 Word 문서의 문단과 글자 모양 표시",
	Long: `ppr2docx로 만든 Word(.docx) 문서를 읽어 문단별 정렬과
글자 모양을 표시합니다. 변환 결과를 Word 없이 확인할 때 사용합니다.

예시:
  ppr2docx inspect story.docx`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}

	doc, err := docx.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("문서 읽기 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	header := color.New(color.Bold)

	if doc.Title() != "" {
		header.Fprintf(out, "제목: %s\n\n", doc.Title())
	}

	for i, p := range doc.Paragraphs() {
		label := fmt.Sprintf("[%d]", i)
		if p.Properties.Justification != docx.JustifyNone {
			label += " " + string(p.Properties.Justification)
		}
		header.Fprintln(out, label)
		for _, r := range p.Runs {
			fmt.Fprintf(out, "    %-24s %q\n", r.Properties, r.Text)
		}
	}
	return nil
}
