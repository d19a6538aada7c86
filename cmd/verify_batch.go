package main

import (
	"bytes"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/dealer-scout/internal/model"
	"github.com/sells-group/dealer-scout/internal/report"
)

var verifyBatchCmd = &cobra.Command{
	Use:   "verify-batch <candidates.yaml>",
	Short: "Verify a file of competitor candidates",
	Long:  "Reads a YAML or JSON list of candidates, verifies them concurrently, and writes a report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("out")
		if format == report.FormatXLSX && outPath == "" {
			return eris.New("verify-batch: xlsx output requires --out")
		}
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if concurrency <= 0 {
			concurrency = cfg.Verify.Concurrency
		}

		candidates, err := loadCandidates(args[0])
		if err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		zap.L().Info("verifying candidates",
			zap.Int("count", len(candidates)),
			zap.Int("concurrency", concurrency),
		)
		results, err := env.Verifier.VerifyAll(ctx, candidates, concurrency)
		if err != nil && results == nil {
			return eris.Wrap(err, "verify-batch")
		}
		if err != nil {
			zap.L().Warn("verify-batch interrupted, writing partial report", zap.Error(err))
		}

		var out io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, ferr := os.Create(outPath)
			if ferr != nil {
				return eris.Wrap(ferr, "verify-batch: create output")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		if werr := report.Write(out, format, results); werr != nil {
			return werr
		}
		return err
	},
}

// loadCandidates reads a list of candidates. The file may be a bare list
// or a mapping with a "candidates" key. JSON parses as YAML.
func loadCandidates(path string) ([]model.Candidate, error) {
	candidates, err := loadList[model.Candidate](path, "candidates")
	return candidates, eris.Wrap(err, "verify-batch")
}

// loadList reads a YAML or JSON file holding either a bare list or a
// mapping with the list under key.
func loadList[T any](path, key string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, eris.Errorf("%s is empty", path)
	}

	var items []T
	if data[0] == '[' || data[0] == '-' {
		err = yaml.Unmarshal(data, &items)
	} else {
		var wrapped map[string]yaml.Node
		err = yaml.Unmarshal(data, &wrapped)
		if n, ok := wrapped[key]; ok && err == nil {
			err = n.Decode(&items)
		}
	}
	if err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	if len(items) == 0 {
		return nil, eris.Errorf("no %s in %s", key, path)
	}
	return items, nil
}

func init() {
	f := verifyBatchCmd.Flags()
	f.String("format", "json", "report format: json, yaml or xlsx")
	f.String("out", "", "write the report to this file instead of stdout")
	f.Int("concurrency", 0, "parallel verifications (default from config)")
	rootCmd.AddCommand(verifyBatchCmd)
}
