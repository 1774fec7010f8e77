// Package cli implements the ppr2docx command line.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roboco-io/ppr2docx/internal/config"
	"github.com/roboco-io/ppr2docx/internal/logging"
)

// EnvConfigPath selects a config file when --config is not given.
const EnvConfigPath = "PPR2DOCX_CONFIG"

var version = "dev"

var (
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "ppr2docx",
	Short: "ppr 마크업 문서를 Word(.docx) 문서로 변환",
	Long: `ppr2docx는 ppr 마크업으로 작성된 문서를 Word(.docx) 문서로 변환합니다.

문단은 역슬래시(\)로 구분하며, 각 문단은 블록 표시자로 시작합니다:
  P    본문 문단
  T    제목 (가운데 정렬)
  H1-9 머리글
  B    책갈피 (현재 출력되지 않음)

문단 안에서 두 글자 표시자로 글자 모양을 켜고 끕니다:
  **굵게**  //기울임//  __밑줄__  --취소선--

예시:
  ppr2docx -i story.ppr
  ppr2docx convert -i story.ppr -o out.docx
  ppr2docx extract -i story.ppr --format markdown`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if convertInput == "" && len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ppr2docx %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "설정 파일 경로 (기본: ~/.ppr2docx/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "상세 출력")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "조용한 모드")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "색상 출력 끄기")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "로그 형식 (text, json)")

	rootCmd.Args = cobra.MaximumNArgs(1)
	addConvertFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "오류: %v\n", err)
	}
	return err
}

// newLoader returns the config loader selected by --config, the
// environment, or the default location.
func newLoader() (*config.Loader, error) {
	path := configPath
	if path == "" {
		path = config.GetEnvOrDefault(EnvConfigPath, "")
	}
	if path != "" {
		return config.NewLoaderWithPath(path), nil
	}
	return config.NewLoader()
}

// loadSettings loads the configuration, applies the global flags and
// configures logging.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}

	switch {
	case quiet:
		cfg.Log.Level = "error"
	case verbose || config.GetEnvBool("PPR2DOCX_VERBOSE"):
		cfg.Log.Level = "debug"
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	logging.Init(level, format, cmd.ErrOrStderr())

	logging.Debug("configuration loaded", "path", loader.ConfigPath(), "exists", loader.Exists())
	return cfg, nil
}
