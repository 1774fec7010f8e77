package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roboco-io/ppr2docx/internal/compiler"
	"github.com/roboco-io/ppr2docx/internal/export"
	"github.com/roboco-io/ppr2docx/internal/logging"
)

var (
	convertInput  string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "ppr 문서를 Word(.docx) 문서로 변환",
	Long: `ppr 문서를 Word(.docx) 문서로 변환합니다.

출력 경로를 지정하지 않으면 입력 파일의 확장자를 .docx로 바꾼 경로에 저장합니다.
변환 중 오류가 발생하면 출력 파일은 만들어지지 않습니다.

환경 변수:
  PPR2DOCX_CONFIG=xxx     설정 파일 경로
  PPR2DOCX_LOG_LEVEL=xxx  로그 수준 (debug, info, warn, error)
  PPR2DOCX_WORKERS=n      문단 분석 작업자 수

예시:
  ppr2docx convert -i story.ppr
  ppr2docx convert story.ppr -o out.docx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&convertInput, "input", "i", "", "입력 ppr 파일 경로")
	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "출력 docx 파일 경로 (기본: 입력 파일 이름.docx)")
}

// inputPath picks the input from the -i flag or the positional argument.
func inputPath(flag string, args []string) (string, error) {
	switch {
	case flag != "" && len(args) > 0 && args[0] != flag:
		return "", fmt.Errorf("입력 파일이 두 번 지정되었습니다: %s, %s", flag, args[0])
	case flag != "":
		return flag, nil
	case len(args) > 0:
		return args[0], nil
	default:
		return "", fmt.Errorf("입력 파일을 지정하세요 (-i, --input)")
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, err := inputPath(convertInput, args)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	output := convertOutput
	if output == "" {
		output = export.OutputPath(input)
	}
	if filepath.Clean(output) == filepath.Clean(input) {
		return fmt.Errorf("출력 파일이 입력 파일과 같습니다: %s", output)
	}

	logging.Debug("converting", "input", input, "output", output)

	doc, err := compiler.CompileFile(input, cfg.LexerOptions())
	if err != nil {
		return fmt.Errorf("문서 변환 실패: %w", err)
	}

	if err := export.New(cfg.ExportOptions()).Export(doc, output); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}

	logging.Info("converted",
		"input", input,
		"output", output,
		"blocks", doc.Len(),
		"digest", doc.Metadata.Digest,
	)

	if !quiet {
		color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "변환 완료: %s (%d 블록)\n", output, doc.Len())
	}
	return nil
}
