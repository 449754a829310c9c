package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/faqdesk/internal/domain/auth"
	"github.com/yanqian/faqdesk/internal/domain/faq"
	"github.com/yanqian/faqdesk/internal/infra/archive"
	"github.com/yanqian/faqdesk/internal/infra/faqrepo"
	"github.com/yanqian/faqdesk/internal/infra/faqstore"
	"github.com/yanqian/faqdesk/pkg/logger"
)

const defaultFAQPath = "data/faq.json"

type cliOptions struct {
	file     string
	jsonOut  bool
	logLevel string
}

// newRootCmd builds the operator CLI. Commands edit the FAQ file in place, the
// same way the API's admin routes do.
func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:          "faqctl",
		Short:        "Manage the FAQ knowledge base",
		Long:         "faqctl lists, searches and edits the FAQ document served by the faqdesk API.",
		SilenceUsage: true,
	}
	defaultFile := os.Getenv("DATA_FAQ_PATH")
	if defaultFile == "" {
		defaultFile = defaultFAQPath
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", defaultFile, "path to the FAQ JSON document")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print results as JSON")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newStatsCmd(opts),
		newSearchCmd(opts),
		newAskCmd(opts),
		newHashPasswordCmd(),
	)
	return root
}

func (o *cliOptions) service(cmd *cobra.Command) faq.Service {
	log := logger.NewWithWriter(cmd.ErrOrStderr(), o.logLevel, "text")
	repo := faqrepo.NewFileRepository(o.file, log)
	return faq.NewService(faq.Config{}, repo, faqstore.NewMemoryStore(), archive.Noop{}, log)
}

func (o *cliOptions) print(w io.Writer, v any, text func(io.Writer)) error {
	if o.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func newListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [category]",
		Short: "List questions, optionally for one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.service(cmd)
			var (
				entries []faq.Entry
				err     error
			)
			if len(args) == 1 {
				entries, err = svc.ByCategory(cmd.Context(), args[0])
			} else {
				var data faq.Data
				data, err = svc.All(cmd.Context())
				entries = data.FAQ
			}
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), entries, func(w io.Writer) {
				for _, e := range entries {
					printEntry(w, e)
				}
				fmt.Fprintf(w, "%d question(s)\n", len(entries))
			})
		},
	}
}

type entryFlags struct {
	question string
	answer   string
	category string
	keywords []string
	priority int
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.question, "question", "q", "", "question text")
	cmd.Flags().StringVarP(&f.answer, "answer", "a", "", "answer text")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category key")
	cmd.Flags().StringSliceVarP(&f.keywords, "keywords", "k", nil, "comma separated keywords")
	cmd.Flags().IntVarP(&f.priority, "priority", "p", 0, "priority, lower is more prominent")
}

func newAddCmd(opts *cliOptions) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := faq.CreateRequest{
				Question: flags.question,
				Answer:   flags.answer,
				Keywords: flags.keywords,
				Category: flags.category,
			}
			if cmd.Flags().Changed("priority") {
				req.Priority = &flags.priority
			}
			entry, err := opts.service(cmd).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), entry, func(w io.Writer) {
				fmt.Fprintf(w, "added question #%d\n", entry.ID)
			})
		},
	}
	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newEditCmd(opts *cliOptions) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the given fields of a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req faq.UpdateRequest
			changed := cmd.Flags().Changed
			if changed("question") {
				req.Question = &flags.question
			}
			if changed("answer") {
				req.Answer = &flags.answer
			}
			if changed("category") {
				req.Category = &flags.category
			}
			if changed("keywords") {
				req.Keywords = &flags.keywords
			}
			if changed("priority") {
				req.Priority = &flags.priority
			}
			if req == (faq.UpdateRequest{}) {
				return errors.New("nothing to change, pass at least one field flag")
			}
			entry, err := opts.service(cmd).Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), entry, func(w io.Writer) {
				fmt.Fprintf(w, "updated question #%d\n", entry.ID)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newDeleteCmd(opts *cliOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("refusing to delete question #%d without --yes", id)
			}
			if err := opts.service(cmd).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted question #%d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

func newStatsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := opts.service(cmd).Stats(cmd.Context())
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), stats, func(w io.Writer) {
				fmt.Fprintf(w, "questions:  %d\n", stats.TotalQuestions)
				fmt.Fprintf(w, "categories: %d\n", stats.CategoriesCount)
				for category, n := range stats.QuestionsByCategory {
					fmt.Fprintf(w, "  %-16s %d\n", category, n)
				}
				fmt.Fprintf(w, "keywords:   %s\n", strings.Join(stats.PopularKeywords, ", "))
			})
		},
	}
}

func newSearchCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Exact keyword search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.service(cmd).Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), result, func(w io.Writer) {
				if len(result.FAQ) == 0 {
					fmt.Fprintln(w, "no matches")
					return
				}
				for _, e := range result.FAQ {
					printEntry(w, e)
				}
			})
		},
	}
}

func newAskCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query>",
		Short: "Fuzzy search with relevance scores and suggestions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.service(cmd).FuzzySearch(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !result.Success {
				return errors.New(result.Message)
			}
			return opts.print(cmd.OutOrStdout(), result, func(w io.Writer) {
				if result.ResultsCount == 0 {
					fmt.Fprintln(w, "no matches")
				}
				for _, m := range result.Matches {
					fmt.Fprintf(w, "%3d%%  #%d %s (%s)\n", m.RelevanceScore, m.ID, m.Question, m.MatchType)
				}
				if len(result.Suggestions) > 0 {
					fmt.Fprintln(w, "see also:")
					for _, s := range result.Suggestions {
						fmt.Fprintf(w, "  - %s\n", s)
					}
				}
			})
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash for admin.passwordHash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func printEntry(w io.Writer, e faq.Entry) {
	fmt.Fprintf(w, "#%d [%s] %s\n", e.ID, e.Category, e.Question)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
