package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"othello-engine/engine"
	om "othello-engine/othellomg"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	threads := flag.Int("threads", 0, "worker threads, 0 for auto")
	ttBits := flag.Int("tt", engine.DefaultTTBits, "transposition table size as a power of two")
	private := flag.Bool("private", false, "give every worker its own transposition table")
	sequential := flag.Bool("sequential", false, "score root moves one after another instead of in parallel")
	level := flag.String("log", "info", "log level")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	opts := engine.DefaultOptions()
	opts.Threads = *threads
	opts.TTBits = *ttBits
	opts.PrivateTables = *private
	opts.DisableParallel = *sequential

	s, err := newSession(os.Stdout, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start engine")
	}
	s.loop(os.Stdin)
}

// session is one text-protocol conversation: a current position, the side to
// move and the engine answering "go".
type session struct {
	out  io.Writer
	opts engine.Options
	eng  *engine.Engine
	pos  om.Position

	searching sync.WaitGroup
	outMu     sync.Mutex
}

func newSession(out io.Writer, opts engine.Options) (*session, error) {
	eng, err := engine.New(opts)
	if err != nil {
		return nil, err
	}
	return &session{
		out:  out,
		opts: opts,
		eng:  eng,
		pos:  om.NewPosition(om.InitialBoard(), om.Black),
	}, nil
}

func (s *session) println(a ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintln(s.out, a...)
}

func (s *session) loop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !s.handle(scanner.Text()) {
			break
		}
	}
	s.eng.Stop()
	s.searching.Wait()
}

// handle runs one command and reports whether the loop should go on.
func (s *session) handle(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 { // ignore blank lines
		return true
	}
	args := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "quit":
		return false
	case "isready":
		s.searching.Wait()
		s.println("readyok")
	case "new", "newgame":
		s.searching.Wait()
		s.pos = om.NewPosition(om.InitialBoard(), om.Black)
	case "position":
		s.searching.Wait()
		if err := s.setPosition(args); err != nil {
			s.println("info string", err)
		}
	case "play":
		s.searching.Wait()
		if err := s.play(args); err != nil {
			s.println("info string", err)
		}
	case "legal":
		moves := om.SquaresOf(s.pos.Moves())
		s.println(joinSquares(moves))
	case "board", "d":
		s.println(s.pos.Board().String())
		s.println("side", s.pos.Side)
	case "eval":
		log.Info().EmbedObject(engine.Explain(s.pos)).Msg("evaluation")
	case "moveordering":
		s.println(joinSquares(engine.RootOrder(s.pos)))
	case "perft":
		depth := 1
		if len(args) > 0 {
			var err error
			if depth, err = strconv.Atoi(args[0]); err != nil {
				s.println("info string", errors.Wrap(err, "could not convert depth"))
				return true
			}
		}
		start := time.Now()
		nodes := om.Perft(s.pos, depth)
		s.println("nodes", nodes, "time", time.Since(start).Milliseconds())
	case "go":
		so, err := parseGo(args)
		if err != nil {
			s.println("info string", err)
			return true
		}
		s.searching.Wait()
		pos := s.pos
		s.searching.Add(1)
		go func() {
			defer s.searching.Done()
			res := s.eng.AnalyzePosition(pos, so)
			s.println("info depth", res.Depth, "score", res.Score, "nodes", res.Nodes, "pv", res.PV)
			s.println("bestmove", res.Move)
		}()
	case "stop":
		s.eng.Stop()
	case "setoption":
		s.searching.Wait()
		if err := s.setOption(args); err != nil {
			s.println("info string", err)
		}
	default:
		s.println("info string Unknown command:", line)
	}
	return true
}

// setPosition handles "position startpos [moves ...]" and
// "position board <64 cells> <side> [moves ...]".
func (s *session) setPosition(args []string) error {
	if len(args) == 0 {
		return errors.New("malformed position command")
	}
	var pos om.Position
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos = om.NewPosition(om.InitialBoard(), om.Black)
		args = args[1:]
	case "board":
		if len(args) < 3 {
			return errors.New("position board needs cells and a side")
		}
		b, err := om.ParseBoard(args[1])
		if err != nil {
			return err
		}
		side, err := om.ParseColor(args[2])
		if err != nil {
			return err
		}
		pos = om.NewPosition(b, side)
		args = args[3:]
	default:
		return errors.Errorf("invalid position subcommand %q", args[0])
	}
	if len(args) > 0 && strings.ToLower(args[0]) == "moves" {
		for _, mv := range args[1:] {
			next, err := applyMove(pos, mv)
			if err != nil {
				return err
			}
			pos = next
		}
	}
	s.pos = pos
	return nil
}

func (s *session) play(args []string) error {
	for _, mv := range args {
		next, err := applyMove(s.pos, mv)
		if err != nil {
			return err
		}
		s.pos = next
	}
	return nil
}

// applyMove plays mv, which may be "pass" when the side to move has none.
func applyMove(pos om.Position, mv string) (om.Position, error) {
	if strings.EqualFold(mv, "pass") {
		if pos.Moves() != 0 {
			return pos, errors.Errorf("cannot pass with legal moves available")
		}
		return pos.Pass(), nil
	}
	sq, err := om.ParseSquare(mv)
	if err != nil {
		return pos, err
	}
	if pos.Moves()&sq.Bit() == 0 {
		return pos, errors.Errorf("move %v is not legal for %v", sq, pos.Side)
	}
	return pos.Play(sq), nil
}

// parseGo reads "go [time <ms>] [depth <n>] [infinite]".
func parseGo(args []string) (engine.SearchOptions, error) {
	so := engine.SearchOptions{Time: time.Second, MaxDepth: engine.DefaultMaxDepth}
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "infinite":
			so.Time = engine.NoTimeLimit
			so.MaxDepth = engine.MaxSearchDepth
		case "time", "movetime":
			i++
			if i >= len(args) {
				return so, errors.New("malformed go command option time")
			}
			ms, err := strconv.Atoi(args[i])
			if err != nil {
				return so, errors.Wrap(err, "could not convert time")
			}
			so.Time = time.Duration(ms) * time.Millisecond
		case "depth":
			i++
			if i >= len(args) {
				return so, errors.New("malformed go command option depth")
			}
			depth, err := strconv.Atoi(args[i])
			if err != nil {
				return so, errors.Wrap(err, "could not convert depth")
			}
			so.MaxDepth = depth
		default:
			return so, errors.Errorf("unknown go subcommand %q", args[i])
		}
	}
	return so, nil
}

// setOption handles "setoption name <name> value <value>" and rebuilds the
// engine with the new options.
func (s *session) setOption(args []string) error {
	if len(args) != 4 || !strings.EqualFold(args[0], "name") || !strings.EqualFold(args[2], "value") {
		return errors.New("malformed setoption command")
	}
	opts := s.opts
	value := args[3]
	var err error
	switch strings.ToLower(args[1]) {
	case "threads":
		opts.Threads, err = strconv.Atoi(value)
	case "hash", "ttbits":
		opts.TTBits, err = strconv.Atoi(value)
	case "privatetables":
		opts.PrivateTables, err = strconv.ParseBool(value)
	case "sequential":
		opts.DisableParallel, err = strconv.ParseBool(value)
	case "cutstats":
		opts.PrintCutStats, err = strconv.ParseBool(value)
	case "endgame":
		opts.EndgameEmpties, err = strconv.Atoi(value)
	default:
		return errors.Errorf("unknown option %q", args[1])
	}
	if err != nil {
		return errors.Wrapf(err, "option %s", args[1])
	}
	eng, err := engine.New(opts)
	if err != nil {
		return err
	}
	s.opts, s.eng = opts, eng
	return nil
}

func joinSquares(moves []om.Square) string {
	names := make([]string, len(moves))
	for i, sq := range moves {
		names[i] = sq.String()
	}
	return strings.Join(names, " ")
}
