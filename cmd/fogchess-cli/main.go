package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"fogchess/internal/engine"
	"fogchess/internal/fogchess"
	"fogchess/internal/server/game"
)

type cli struct {
	in    *bufio.Scanner
	out   io.Writer
	sess  *game.Session
	debug bool
}

func main() {
	ai := flag.Bool("ai", false, "play against the engine (default)")
	two := flag.Bool("two", false, "two players on one terminal")
	debug := flag.Bool("debug", false, "show engine moves and the full board")
	sideFlag := flag.String("side", "white", "your side against the engine")
	seed := flag.Int64("seed", 0, "engine RNG seed (0 = time based)")
	delay := flag.Duration("ai-delay", 500*time.Millisecond, "engine think delay")
	flag.Parse()

	if *ai && *two {
		fmt.Fprintln(os.Stderr, "choose one of --ai or --two")
		os.Exit(2)
	}
	mode := game.ModeAI
	if *two {
		mode = game.ModeTwoPlayer
	}
	human := fogchess.NoSide
	if mode == game.ModeAI {
		s, err := fogchess.ParseSide(*sideFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		human = s
	}

	log := zap.NewNop()
	if *debug {
		if l, err := zap.NewDevelopment(); err == nil {
			log = l
		}
	}
	defer func() { _ = log.Sync() }()

	eng := engine.NewEngine(*seed)
	eng.ThinkDelay = *delay
	mgr := game.NewManager(eng, log)

	ctx := context.Background()
	sess, err := mgr.NewGame(ctx, mode, human)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c := &cli{
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
		sess:  sess,
		debug: *debug,
	}
	c.run(ctx)
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *cli) run(ctx context.Context) {
	c.printf("Welcome to Fog of War Chess!\n")
	if c.sess.Mode == game.ModeAI {
		c.printf("You are playing %s against the computer.\n", c.sess.Human)
	}
	c.printf("Enter moves like e2e4 (add n/b/r/q to choose a promotion).\n")
	c.printf("Commands: moves, resign, quit.\n")

	for c.sess.Outcome().Status == fogchess.InProgress {
		snap := c.sess.View(c.seat())
		c.printf("\n%s's view (%d plies):\n", title(snap.Observer.String()), snap.Plies)
		renderView(c.out, snap.View)
		if c.debug {
			b, _ := c.sess.Board()
			c.printf("\nFull board:\n")
			renderFull(c.out, b)
		}

		c.printf("%s to move> ", snap.ToMove)
		if !c.in.Scan() {
			c.printf("\n")
			return
		}
		line := strings.ToLower(strings.TrimSpace(c.in.Text()))
		switch line {
		case "":
			continue
		case "quit", "exit":
			c.printf("Game has been ended by the player.\n")
			return
		case "resign":
			if err := c.sess.Resign(snap.Observer); err != nil {
				c.printf("Cannot resign: %v\n", err)
			}
			continue
		case "moves":
			var ms []string
			for _, m := range snap.LegalMoves {
				ms = append(ms, m.String())
			}
			c.printf("%s\n", strings.Join(ms, " "))
			continue
		}

		m, err := fogchess.ParseMove(line)
		if err != nil {
			c.printf("Invalid move format. Please use e.g. e2e4.\n")
			continue
		}
		if needsPromotionChoice(snap.View, m) {
			m.Promotion = c.askPromotion()
		}
		res, err := c.sess.Play(ctx, snap.Observer, m)
		if err != nil {
			var ime *fogchess.IllegalMoveError
			if errors.As(err, &ime) {
				c.printf("Illegal move: %s\n", ime.Reason)
			} else {
				c.printf("Error: %v\n", err)
			}
			continue
		}
		c.reportReply(res)
	}

	out := c.sess.Outcome()
	switch out.Status {
	case fogchess.Stalemate:
		c.printf("\nStalemate! The game is a draw.\n")
	case fogchess.Checkmate:
		c.printf("\nCheckmate! %s wins!\n", title(out.Winner.String()))
	case fogchess.Resigned:
		c.printf("\n%s resigns. %s wins!\n", title(out.Winner.Opposite().String()), title(out.Winner.String()))
	}
	c.showFinal()
}

// showFinal 只有 --debug 时才揭开整盘，否则仍是当前一方的迷雾视角。
func (c *cli) showFinal() {
	c.printf("Final position:\n")
	if !c.debug {
		renderView(c.out, c.sess.View(c.seat()).View)
		return
	}
	b, _ := c.sess.Board()
	renderFull(c.out, b)
}

// seat 当前坐在终端前的一方。
func (c *cli) seat() fogchess.Side {
	if c.sess.Mode == game.ModeAI {
		return c.sess.Human
	}
	return c.sess.View(fogchess.White).ToMove
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c *cli) reportReply(res game.PlayResult) {
	if res.Reply == nil {
		return
	}
	if c.debug {
		c.printf("Engine played %s.\n", res.Reply.Move())
		return
	}
	c.printf("%s made a move.\n", title(res.Reply.Side.String()))
}

func needsPromotionChoice(v fogchess.MaskedBoard, m fogchess.Move) bool {
	if m.Promotion != fogchess.NoKind {
		return false
	}
	p, ok := v.At(m.From)
	if !ok || p.Kind() != fogchess.Pawn {
		return false
	}
	if p.Side() == fogchess.White {
		return m.To.Rank() == fogchess.Ranks-1
	}
	return m.To.Rank() == 0
}

func (c *cli) askPromotion() fogchess.PieceKind {
	c.printf("Promote to (q=Queen, r=Rook, b=Bishop, n=Knight): ")
	if !c.in.Scan() {
		return fogchess.Queen
	}
	switch strings.ToLower(strings.TrimSpace(c.in.Text())) {
	case "r":
		return fogchess.Rook
	case "b":
		return fogchess.Bishop
	case "n":
		return fogchess.Knight
	}
	return fogchess.Queen
}
