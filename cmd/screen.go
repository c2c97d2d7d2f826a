package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/jobdesc"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/report"
)

const (
	PromptText = "Print text report"
	PromptJSON = "Print JSON report"
	PromptDump = "Dump report to file"
	PromptExit = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next?",
	Items: []string{PromptText, PromptJSON, PromptDump, PromptExit},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a resume file against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		screen(cmd)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringP("resume", "r", "", "path to the resume (PDF, DOCX or plain text)")
	screenCmd.Flags().String("job-description", "", "job description text")
	screenCmd.Flags().String("job-description-file", "", "file with the job description. Takes precedence over --job-description")
	screenCmd.Flags().StringP("output", "o", "", "report format: text or json (default text)")
	screenCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without asking")
	screenCmd.Flags().Uint64("seed", 0, "seed for the fallback score draw")

	screenCmd.MarkFlagRequired("resume")
	screenCmd.MarkFlagsMutuallyExclusive("job-description", "job-description-file")

	viper.BindPFlag("output", screenCmd.Flags().Lookup("output"))
}

func screen(cmd *cobra.Command) {
	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer base.Sync()

	config, err := getConfig(viper.GetViper())
	if err != nil {
		base.Fatal("getting a config", zap.Error(err))
	}

	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		config.Fallback.Seed = &seed
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	screenLogger := logger.WithRequest(base, uuid.NewString(), resumePath)
	screenLogger.Info("starting the resume-screener", zap.String("version", version))

	data, err := os.ReadFile(resumePath)
	if err != nil {
		screenLogger.Fatal("reading the resume", zap.Error(err))
	}

	doc := extract.Extract(data)
	if doc.Fallback != "" {
		screenLogger.Warn("document decoded as plain text",
			zap.String("mime", doc.MIME),
			zap.String("reason", doc.Fallback),
		)
	}
	screenLogger.Debug("resume extracted",
		zap.String("kind", string(doc.Kind)),
		zap.String("mime", doc.MIME),
		zap.Int("length", len(doc.Text)),
	)

	jd, err := loadJobDescription(cmd, !autoApprove)
	if err != nil {
		screenLogger.Fatal("loading the job description", zap.Error(err))
	}

	assembler, err := newAssembler(config, screenLogger)
	if err != nil {
		screenLogger.Fatal("building the screener", zap.Error(err))
	}

	r := assembler.Assemble(doc.Text, jd)

	out := cmd.OutOrStdout()
	if err := render(out, r, config.Output); err != nil {
		screenLogger.Fatal("rendering the report", zap.Error(err))
	}

	if autoApprove {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			screenLogger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, out, screenLogger, r); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			screenLogger.Fatal("exiting", zap.Error(err))
		}
	}
}

// loadJobDescription reads the job description from flags and asks for it
// when none is given and the session is interactive.
func loadJobDescription(cmd *cobra.Command, interactive bool) (string, error) {
	value, _ := cmd.Flags().GetString("job-description")
	file, _ := cmd.Flags().GetString("job-description-file")

	src := jobdesc.Source{Value: value, File: file}
	if !src.Configured() && interactive {
		jdPrompt := promptui.Prompt{Label: "Job description"}
		entered, err := jdPrompt.Run()
		if err != nil {
			return "", fmt.Errorf("prompt: %w", err)
		}
		src.Value = entered
	}

	return jobdesc.Load(src)
}

func render(out io.Writer, r *report.Report, output string) error {
	switch output {
	case "", outputText:
		_, err := fmt.Fprint(out, r.Text())
		return err
	case outputJSON:
		data, err := r.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}

func handleAction(action string, out io.Writer, logger *zap.Logger, r *report.Report) error {
	switch action {
	case PromptText:
		return render(out, r, outputText)
	case PromptJSON:
		return render(out, r, outputJSON)
	case PromptDump:
		filename, err := r.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
