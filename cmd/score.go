package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spigell/ats-screener/internal/input"
	"github.com/spigell/ats-screener/internal/report"
	"github.com/spigell/ats-screener/internal/requirements"
	"github.com/spigell/ats-screener/internal/scoring"
	"github.com/spigell/ats-screener/internal/screening"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptPrintReport    = "Print report"
	PromptSkillBreakdown = "Show skill breakdown"
	PromptResultToFile   = "Dump result to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptPrintReport, PromptSkillBreakdown, PromptResultToFile, PromptExit},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against job requirements",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "resume text file")
	scoreCmd.Flags().StringP("text", "t", "", "resume text passed inline")
	scoreCmd.Flags().StringP("job", "J", "", "job description file to parse requirements from")
	scoreCmd.Flags().Int("experience-years", -1, "required years of experience (overrides config and job description)")
	scoreCmd.Flags().StringSlice("required", nil, "required skills (overrides config and job description)")
	scoreCmd.Flags().StringSlice("preferred", nil, "preferred skills (overrides config and job description)")
	scoreCmd.Flags().StringP("output", "o", "", "write the JSON result to this file, - for stdout")
	scoreCmd.Flags().BoolP("interactive", "i", false, "enter requirements and choose actions interactively")
}

func score(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, _, e := setup()

	resumeFile, _ := cmd.Flags().GetString("resume")
	resumeText, _ := cmd.Flags().GetString("text")

	resume, err := e.loader.Load(input.Source{Name: "resume", Value: resumeText, File: resumeFile})
	if err != nil {
		if !errors.Is(err, input.ErrEmpty) {
			logger.Fatal("loading resume", zap.Error(err))
		}
		logger.Warn("resume is empty, scoring an empty document", zap.Error(err))
	}

	reqs, err := resolveRequirements(cmd, e)
	if err != nil {
		logger.Fatal("resolving requirements", zap.Error(err))
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		reqs, err = promptRequirements(reqs)
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if err := reqs.Validate(); err != nil {
		logger.Fatal("invalid requirements", zap.Error(err))
	}

	res, err := e.screener.Screen(ctx, resume.Body, reqs)
	if err != nil {
		logger.Fatal("scoring resume", zap.Error(err))
	}

	logger.Info("resume scored",
		zap.String("resume", resume.Name),
		zap.Float64("score", res.Match.OverallScore),
		zap.Bool("shortlisted", res.Shortlisted),
	)

	output, _ := cmd.Flags().GetString("output")
	if err := writeResult(output, res); err != nil {
		logger.Fatal("writing result", zap.Error(err))
	}

	if !interactive {
		if output != "-" {
			if err := report.Text(os.Stdout, res.Match, res.Skills); err != nil {
				logger.Fatal("printing report", zap.Error(err))
			}
		}
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, res, reqs); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, res screening.Result, reqs requirements.JobRequirements) error {
	switch action {
	case PromptPrintReport:
		return report.Text(os.Stdout, res.Match, res.Skills)
	case PromptSkillBreakdown:
		wanted := append(append([]string{}, reqs.RequiredSkills...), reqs.PreferredSkills...)
		breakdown := scoring.BreakdownSkills(res.Skills.All(), wanted)
		// do not bother error since the breakdown holds only strings and numbers
		pretty, _ := json.MarshalIndent(breakdown, "", "  ")
		logger.Info(string(pretty), zap.Int("skills", len(wanted)))
		return nil
	case PromptResultToFile:
		filename, err := report.DumpToTmpFile(res.Match)
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// resolveRequirements layers config defaults, the job description and flags.
func resolveRequirements(cmd *cobra.Command, e *engine) (requirements.JobRequirements, error) {
	reqs := e.requirements

	jobFile, _ := cmd.Flags().GetString("job")
	if jobFile != "" {
		job, err := e.loader.Load(input.Source{Name: "job description", File: jobFile})
		if err != nil && !errors.Is(err, input.ErrEmpty) {
			return reqs, err
		}
		reqs = requirements.Parse(job.Body, e.extractor, reqs)
	}

	if years, _ := cmd.Flags().GetInt("experience-years"); years >= 0 {
		reqs.ExperienceYears = years
	}
	if required, _ := cmd.Flags().GetStringSlice("required"); len(required) > 0 {
		reqs.RequiredSkills = required
	}
	if preferred, _ := cmd.Flags().GetStringSlice("preferred"); len(preferred) > 0 {
		reqs.PreferredSkills = preferred
	}

	return reqs.Normalized(), nil
}

func promptRequirements(reqs requirements.JobRequirements) (requirements.JobRequirements, error) {
	yearsPrompt := promptui.Prompt{
		Label:   "Required years of experience",
		Default: strconv.Itoa(reqs.ExperienceYears),
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return errors.New("enter a whole number")
			}
			if n < 0 || n > requirements.MaxExperienceYears {
				return fmt.Errorf("enter a number between 0 and %d", requirements.MaxExperienceYears)
			}
			return nil
		},
	}

	years, err := yearsPrompt.Run()
	if err != nil {
		return reqs, err
	}
	// validated by the prompt
	reqs.ExperienceYears, _ = strconv.Atoi(strings.TrimSpace(years))

	required, err := promptList("Required skills (comma separated)", reqs.RequiredSkills)
	if err != nil {
		return reqs, err
	}
	reqs.RequiredSkills = required

	preferred, err := promptList("Preferred skills (comma separated)", reqs.PreferredSkills)
	if err != nil {
		return reqs, err
	}
	reqs.PreferredSkills = preferred

	return reqs.Normalized(), nil
}

func promptList(label string, current []string) ([]string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   strings.Join(current, ", "),
		AllowEdit: true,
	}

	answer, err := p.Run()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, item := range strings.Split(answer, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

func writeResult(output string, res screening.Result) error {
	switch output {
	case "":
		return nil
	case "-":
		return report.WriteJSON(os.Stdout, res.Match)
	default:
		return report.WriteFile(output, res.Match)
	}
}
