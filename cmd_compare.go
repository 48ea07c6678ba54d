package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chative-core-poc-v1/questionnaire/internal/compare"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

func newCompareCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [file1 file2]",
		Short: "Summarise two documents and compare them",
		Long:  "Summarise two documents with the model and ask it for their differences and common points. Built-in sample documents are used when no files are given.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected zero or two files, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			ctx := cmd.Context()

			first, second := compare.SampleDocument1, compare.SampleDocument2
			if len(args) == 2 {
				var err error
				if first, err = readDocument(args[0]); err != nil {
					return err
				}
				if second, err = readDocument(args[1]); err != nil {
					return err
				}
			}

			cm, err := a.chatModel(ctx)
			if err != nil {
				return err
			}
			comparer, err := compare.New(ctx, cm, a.cfg.LLM.Model)
			if err != nil {
				return err
			}

			con := a.console
			con.Println("正在連接生成服務...")
			res, err := comparer.Compare(ctx, first, second)
			if err != nil {
				logx.Error().Err(err).Msg("Document comparison failed")
				con.Notice(fmt.Sprintf("連接錯誤: %v", err))
				con.Println("\n如果無法連接 Ollama 伺服器，您可能需要：")
				con.Println("1. 安裝並啟動 Ollama: https://ollama.com/download")
				con.Println(fmt.Sprintf("2. 運行 'ollama pull %s' 下載模型", a.cfg.LLM.Model))
				con.Println("3. 設定 LLM_PROVIDER=gemini 改用 Gemini 模型")
				return err
			}

			con.Section("文件1摘要:")
			con.Println(res.FirstSummary)
			con.Section("文件2摘要:")
			con.Println(res.SecondSummary)
			con.Section("比較結果:")
			con.Println(res.Comparison)
			return nil
		},
	}
}

func readDocument(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", path, err)
	}
	return string(b), nil
}
