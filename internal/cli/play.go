package cli

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/aretw0/algotrace"
	"github.com/aretw0/algotrace/internal/presentation/tui"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/playback"
	"github.com/muesli/termenv"
)

// PlayOptions configure trace playback.
type PlayOptions struct {
	RunID    string              // Replay a stored run; empty executes a new one
	Headless bool                // Step a manual clock instead of waiting for real time
	Mode     domain.PlaybackMode // Empty uses the run's setting
	Speed    time.Duration       // Zero uses the run's setting
}

// Play animates the traces of a run until every track is finished.
// Headless playback prints every snapshot immediately, as NDJSON in JSON mode.
func Play(ctx context.Context, opts Options, po PlayOptions, w io.Writer) error {
	env, err := Setup(opts, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	var run *algotrace.Run
	if po.RunID != "" {
		run, err = env.Engine.Resume(ctx, po.RunID)
	} else {
		run, err = newRun(ctx, env)
	}
	if err != nil {
		return err
	}

	settings := run.Descriptor.Settings
	if po.Mode == "" {
		po.Mode = settings.Mode
	}
	if po.Speed <= 0 {
		po.Speed = settings.Speed()
	}
	env.Logger.Debug("playback starting", "run_id", run.Descriptor.ID, "mode", po.Mode, "speed", po.Speed, "headless", po.Headless)

	if po.Headless {
		return playHeadless(ctx, env, run, po, opts, w)
	}
	return playLive(ctx, env, run, po, w)
}

func playHeadless(ctx context.Context, env *Environment, run *algotrace.Run, po PlayOptions, opts Options, w io.Writer) error {
	clock := playback.NewManualClock()
	player := env.Engine.NewPlayer(run.Results,
		playback.WithClock(clock),
		playback.WithMode(po.Mode),
		playback.WithSpeed(po.Speed),
	)
	defer player.Close()

	painter := tui.NewPainter(termenv.Ascii)
	traces := tui.Traces(run.Results)
	enc := json.NewEncoder(w)
	emit := func() error {
		if opts.JSON {
			return enc.Encode(player.Snapshot())
		}
		_, err := io.WriteString(w, painter.Playback(player.Snapshot(), traces))
		return err
	}

	if err := emit(); err != nil {
		return err
	}
	player.Play("")
	for !player.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		clock.Advance(po.Speed)
		if err := emit(); err != nil {
			return err
		}
	}
	return nil
}

func playLive(ctx context.Context, env *Environment, run *algotrace.Run, po PlayOptions, w io.Writer) error {
	out := termenv.NewOutput(w)
	painter := tui.NewPainter(out.Profile)
	traces := tui.Traces(run.Results)

	changed := make(chan struct{}, 1)
	player := env.Engine.NewPlayer(run.Results,
		playback.WithMode(po.Mode),
		playback.WithSpeed(po.Speed),
		playback.WithOnChange(func(playback.Snapshot) {
			select {
			case changed <- struct{}{}:
			default:
			}
		}),
	)
	defer player.Close()

	draw := func() {
		out.ClearScreen()
		io.WriteString(out, painter.Playback(player.Snapshot(), traces))
	}

	draw()
	player.Play("")
	for !player.Finished() {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			draw()
		}
	}
	draw()
	return nil
}
