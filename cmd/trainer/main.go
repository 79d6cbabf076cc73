// cmd/trainer/main.go
// ターミナルで復習セッションを回すクライアント
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	flag "github.com/spf13/pflag"

	"go_4_vocab_trainer/internal/apiclient"
	"go_4_vocab_trainer/internal/trainer"
)

type options struct {
	apiURL   string
	owner    string
	token    string
	source   string
	cardType string
	verbose  bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("trainer", flag.ContinueOnError)
	fs.StringVar(&o.apiURL, "api", envOr("TRAINER_API_URL", "http://localhost:8080"), "API のベースURL")
	fs.StringVar(&o.owner, "owner", os.Getenv("TRAINER_OWNER_ID"), "所有者ID (認証なしのサーバー向け)")
	fs.StringVar(&o.token, "token", os.Getenv("TRAINER_TOKEN"), "Bearer トークン")
	fs.StringVarP(&o.source, "source", "s", string(trainer.SourceDue), "出題元: due | all | last_missed")
	fs.StringVarP(&o.cardType, "type", "t", "", "カード種別: vocab | sentence (省略時は全部)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "デバッグログを出す")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	switch trainer.Source(o.source) {
	case trainer.SourceDue, trainer.SourceAll, trainer.SourceLastMissed:
	default:
		return o, fmt.Errorf("unknown source %q", o.source)
	}
	return o, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen}))

	cfg := apiclient.Config{BaseURL: opts.apiURL, Token: opts.token, MaxRetries: 2}
	if opts.owner != "" {
		if cfg.OwnerID, err = uuid.Parse(opts.owner); err != nil {
			fmt.Fprintf(os.Stderr, "invalid owner id: %v\n", err)
			os.Exit(2)
		}
	}
	client, err := apiclient.New(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	o := trainer.NewOrchestrator(client, logger)
	if err := run(ctx, o, trainer.Source(opts.source), opts.cardType, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\n中断しました")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run は1セッション分の対話を行います
func run(ctx context.Context, o *trainer.Orchestrator, source trainer.Source, cardType string, in io.Reader, out io.Writer) error {
	if err := o.Start(ctx, source, cardType); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if o.State().Status == trainer.StatusFinished {
		fmt.Fprintln(out, "出題するカードはありません。")
		return nil
	}

	good := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	sc := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimSpace(strings.ToLower(sc.Text())), true
	}

	for o.State().Status == trainer.StatusInSession {
		st := o.State()
		card, _ := st.Current()
		dim.Fprintf(out, "[%d/%d] Box %d\n", st.Index+1, len(st.Items), card.Level+1)
		fmt.Fprintf(out, "  %s\n", card.Front)
		fmt.Fprint(out, "(Enter で答えを表示) ")
		if _, ok := readLine(); !ok {
			return nil
		}
		o.Reveal()
		fmt.Fprintf(out, "  → %s\n", card.Back)

		for {
			fmt.Fprint(out, "正解? [y/n] ")
			ans, ok := readLine()
			if !ok {
				return nil
			}
			if ans != "y" && ans != "n" {
				continue
			}
			if err := o.Grade(ctx, ans == "y"); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// 同じカードのまま。もう一度採点できる。
				bad.Fprintf(out, "  %s (%v)\n", o.State().Message, err)
				continue
			}
			if ans == "y" {
				good.Fprintln(out, "  ○")
			} else {
				bad.Fprintln(out, "  ×")
			}
			break
		}
	}

	s := o.Summary()
	fmt.Fprintf(out, "\n終了: %d 枚中 %d 枚正解\n", s.TotalCount, s.CorrectCount)
	return nil
}
