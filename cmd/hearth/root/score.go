package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hearth/internal/score"
	"hearth/internal/ui"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Everdell score tracker",
	}

	cmd.AddCommand(
		newScoreSaveCmd(opts),
		newScoreTotalCmd(opts),
		newScoreHistoryCmd(opts),
		newScoreStatsCmd(opts),
		newScoreDeleteCmd(opts),
		newScoreClearCmd(opts),
		newScoreExportCmd(opts),
	)
	return cmd
}

const playerSpecHelp = `Each argument is one player's sheet:

  Name,season=spring,cards=30,tokens=4,purple=6,journey=3+5,j2=1,events=1,special=Festival:2

Players named in --players (default from config) are seated first; a sheet
fills the seat with the same name or adds a new player.`

// buildDraft seats names and fills in the given player sheets.
func buildDraft(names []string, specs []string) (*score.Draft, error) {
	d := &score.Draft{}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			d.Fill(score.PlayerInput{Name: n, Season: score.DefaultSeason})
		}
	}
	for _, spec := range specs {
		in, err := score.ParsePlayerSpec(spec)
		if err != nil {
			return nil, err
		}
		d.Fill(in)
	}
	if len(d.Players) < 2 {
		return nil, score.ErrNeedNames
	}
	return d, nil
}

func newScoreSaveCmd(opts *rootOptions) *cobra.Command {
	var players []string
	var notes string

	cmd := &cobra.Command{
		Use:   "save <sheet>...",
		Short: "Record a finished game",
		Long:  "Record a finished game.\n\n" + playerSpecHelp,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("players") {
				players = a.cfg.Score.DefaultPlayers
			}
			d, err := buildDraft(players, args)
			if err != nil {
				return err
			}
			d.Notes = notes

			g, err := a.scores.SaveGame(ctx, d)
			if err != nil {
				return err
			}
			w := g.Winner()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("🎉 Game saved! %s won with %d points! 👑", w.Name, w.TotalScore)))
			printGame(cmd.OutOrStdout(), *g)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&players, "players", "p", nil, "Seated players (default from config score.default_players)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Game notes")
	return cmd
}

func newScoreTotalCmd(opts *rootOptions) *cobra.Command {
	var players []string

	cmd := &cobra.Command{
		Use:   "total <sheet>...",
		Short: "Show live totals without saving",
		Long:  "Show live totals without saving.\n\n" + playerSpecHelp,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("players") {
				players = cfg.Score.DefaultPlayers
			}
			d, err := buildDraft(players, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("🧮", "Running totals"))
			totals := d.Totals()
			for i, p := range d.Players {
				b := p.Breakdown()
				fmt.Fprintf(out, "- %s %s %s %s\n", p.Name, p.Season.Info().Icon, ui.Gold.Render(strconv.Itoa(totals[i])), chips(&b))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&players, "players", "p", nil, "Seated players (default from config score.default_players)")
	return cmd
}

func newScoreHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved games, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			games, err := a.scores.Games(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("📜", "Game History"))
			if len(games) == 0 {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconTree+" No games recorded yet."))
				return nil
			}
			if limit > 0 && len(games) > limit {
				games = games[:limit]
			}
			for _, g := range games {
				fmt.Fprintln(out, "")
				printGame(out, g)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many games (0 = all)")
	return cmd
}

func printGame(out io.Writer, g score.Game) {
	fmt.Fprintf(out, "%s %s %s\n", ui.IconCalendar, ui.H2.Render(g.Date.Local().Format("Mon, Jan 2, 2006, 03:04 PM")), ui.Muted.Render(fmt.Sprintf("#%d", g.ID)))
	for rank, p := range g.Players {
		season := p.Season
		if season == "" {
			season = score.DefaultSeason
		}
		total := strconv.Itoa(p.TotalScore)
		if rank == 0 {
			total = ui.Gold.Render(total)
		}
		fmt.Fprintf(out, "  %s %s %s %s %s\n", ui.Medal(rank), p.Name, season.Info().Icon, total, chips(p.Breakdown))
	}
	if g.Notes != nil {
		fmt.Fprintf(out, "  %s %s\n", ui.IconNote, *g.Notes)
	}
}

func chips(b *score.Breakdown) string {
	var parts []string
	for _, c := range score.Chips(b) {
		parts = append(parts, ui.Chip(c.Category.Info().Icon, c.Points))
	}
	return strings.Join(parts, " ")
}

func newScoreStatsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals, per-player records and where points come from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := a.scores.Stats(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Statistics"))
			if s.Empty() {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconTree+" No games recorded yet."))
				return nil
			}
			fmt.Fprintln(out, ui.LabelValue("🎲 Total games", s.TotalGames))
			best := fmt.Sprintf("%d (%s)", s.HighestScore, s.HighestScorePlayer)
			if s.HighestScoreDate != nil {
				best += " " + ui.Muted.Render(s.HighestScoreDate.Local().Format("2006-01-02"))
			}
			fmt.Fprintln(out, ui.LabelValue("👑 Highest score", best))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🦊 Player Stats"))
			for _, p := range s.Players {
				fmt.Fprintf(out, "- %s: %d wins (%.0f%%) %s\n", ui.Key.Render(p.Name), p.Wins, p.WinRate(),
					ui.Muted.Render(fmt.Sprintf("Avg: %.1f | High: %d | Games: %d", p.AverageScore(), p.HighestScore, p.Games)))
			}

			if s.TotalPoints > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconChart+" Where Points Come From"))
				for _, c := range score.Categories {
					info := c.Info()
					pct := s.Percentages[c]
					fmt.Fprintf(out, "- %s %-8s %s %s\n", info.Icon, info.Label, ui.Bar(pct, 100, 20), strconv.FormatFloat(pct, 'f', -1, 64)+"%")
				}
			}
			return nil
		},
	}

	return cmd
}

func newScoreDeleteCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved game",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			deleted, err := a.scores.DeleteGame(ctx, id, confirmer(cmd, opts))
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconTrash+" Game deleted."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing deleted."))
			}
			return nil
		},
	}

	return cmd
}

func newScoreClearCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete ALL saved games (asks twice)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			cleared, err := a.scores.ClearAll(ctx, confirmer(cmd, opts))
			if err != nil {
				return err
			}
			if cleared {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBroom+" All data cleared!"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing cleared."))
			}
			return nil
		},
	}

	return cmd
}

func newScoreExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump saved games as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if outPath == "" || outPath == "-" {
				_, err := a.scores.Export(ctx, cmd.OutOrStdout())
				return err
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create export: %w", err)
			}
			n, err := a.scores.Export(ctx, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Exported %d games to %s", ui.IconDone, n, outPath)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}
