package nativecore

// This file drives the sketch lifecycle: Setup once, then Loop forever.

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// State is the lifecycle position of a board's sketch.
type State int32

const (
	// Idle means Run has not been called.
	Idle State = iota
	// Initializing means Setup is executing.
	Initializing
	// Running means Loop is being called repeatedly.
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// State returns the lifecycle state of the sketch on b.
func (b *Board) State() State { return State(b.state.Load()) }

// Iterations returns how many times Loop has been called.
func (b *Board) Iterations() uint64 { return b.iterations.Load() }

// Run calls s.Setup once and then s.Loop back to back with no delay.  The
// driver adds no throttling; a sketch that wants to idle calls Delay itself.
// Cancelling ctx is the only way out: it is checked before each call to Loop
// and Run then returns ctx.Err().  With a context that is never cancelled Run
// does not return.
func (b *Board) Run(ctx context.Context, s Sketch) error {
	b.state.Store(int32(Initializing))
	b.log.Debug("sketch setup")
	s.Setup(b)

	b.state.Store(int32(Running))
	b.log.Debug("sketch running")
	for {
		if err := ctx.Err(); err != nil {
			b.log.Debug("sketch stopped", "iterations", b.Iterations(), "reason", err)
			return err
		}
		s.Loop(b)
		b.iterations.Add(1)
	}
}

// Main is the default program driver.  It loads the configuration at
// configPath (defaults apply when the file is missing), opens the board and
// runs s until the process is interrupted, at which point the board is closed
// so hardware pins are released.  Process arguments are not consulted.
// Programs wanting a different lifecycle build a Board themselves and call
// Run, or skip the driver altogether.
//
// The first SIGINT or SIGTERM asks the sketch to stop once its current Loop
// returns.  Signal handling is then released, so a second one terminates the
// process even if Loop never returns.
func Main(configPath string, s Sketch) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	context.AfterFunc(ctx, stop)

	if err := runMain(ctx, configPath, s); err != nil {
		log.Fatalf("initialisation error: %v", err)
	}
}

// runMain does the work of Main under ctx and reports start-up failures.
func runMain(ctx context.Context, configPath string, s Sketch) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, closeLog, err := NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	board, err := OpenBoard(cfg, logger)
	if err != nil {
		return err
	}

	err = board.Run(ctx, s)
	logger.Info("sketch stopped", "iterations", board.Iterations(), "reason", err)
	if cerr := board.Close(); cerr != nil {
		logger.Error("board close failed", "error", cerr)
		return nil
	}
	logger.Info("board closed")
	return nil
}
