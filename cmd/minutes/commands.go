package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/minutes"
	"github.com/poiesic/minutes/notes"
	"github.com/poiesic/minutes/storage"
	"github.com/urfave/cli/v2"
)

// openService builds a Service from the config file and flags.
func openService(c *cli.Context, opts ...minutes.ServiceOption) (*minutes.Service, error) {
	fc, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	dbPath, err := databasePath(c, fc)
	if err != nil {
		return nil, err
	}

	opts = append([]minutes.ServiceOption{minutes.WithAIConfig(aiConfig(c, fc))}, opts...)
	svc, err := minutes.NewService(dbPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	return svc, nil
}

func importCommand(c *cli.Context) error {
	meetingID := c.String("meeting")

	segments, err := readTranscript(c.String("file"), meetingID, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("transcript %s has no segments", c.String("file"))
	}

	svc, err := openService(c, minutes.WithSegmentTTL(c.Duration("ttl")))
	if err != nil {
		return err
	}
	defer svc.Close()

	added, err := svc.AppendSegments(c.Context, segments...)
	if err != nil {
		return fmt.Errorf("importing transcript: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d segments for meeting %s\n", len(added), meetingID)
	return nil
}

func processCommand(c *cli.Context) error {
	meetingIDs := c.StringSlice("meeting")
	all := c.Bool("all")
	if all == (len(meetingIDs) > 0) {
		return errors.New("specify either --meeting or --all")
	}

	fc, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	pipelineOpts := []notes.Option{
		notes.WithThemeCount(intSetting(c, "themes", fc.Pipeline.ThemeCount)),
		notes.WithArtifactTTL(durationSetting(c, "artifact-ttl", fc.Pipeline.ArtifactTTL)),
	}
	if fc.Pipeline.PoolSize > 0 {
		pipelineOpts = append(pipelineOpts, notes.WithPoolSize(fc.Pipeline.PoolSize))
	}

	svc, err := openService(c, minutes.WithPipelineOptions(pipelineOpts...))
	if err != nil {
		return err
	}
	defer svc.Close()

	if all {
		meetingIDs, err = svc.ListMeetings(c.Context)
		if err != nil {
			return fmt.Errorf("listing meetings: %w", err)
		}
		if len(meetingIDs) == 0 {
			fmt.Fprintln(c.App.Writer, "No meetings to process")
			return nil
		}
	}

	var progress *progressTracker
	if len(meetingIDs) > 1 {
		progress = newProgressTracker(c.App.ErrWriter, len(meetingIDs))
		progress.Start()
	}

	failed := 0
	for _, meetingID := range meetingIDs {
		artifact, err := svc.Process(c.Context, meetingID)
		if err != nil {
			failed++
			if errors.Is(err, notes.ErrNoTranscripts) {
				slog.Warn("meeting has no transcripts", "meeting", meetingID)
			} else {
				slog.Error("processing failed", "meeting", meetingID, "err", err)
			}
		} else if err := printJSON(c, artifact); err != nil {
			return err
		}
		if progress != nil {
			progress.Done(err == nil)
		}
	}
	if progress != nil {
		progress.Finish()
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d meetings failed", failed, len(meetingIDs)), 1)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	meetingID := c.String("meeting")
	artifact, err := svc.GetArtifact(c.Context, meetingID)
	if errors.Is(err, storage.ErrNotFound) {
		return cli.Exit(fmt.Sprintf("no artifact for meeting %s: not found", meetingID), 1)
	}
	if err != nil {
		return err
	}
	return printJSON(c, artifact)
}

func meetingsCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	meetingIDs, err := svc.ListMeetings(c.Context)
	if err != nil {
		return err
	}
	for _, id := range meetingIDs {
		fmt.Fprintln(c.App.Writer, id)
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	meetingID := c.String("meeting")
	deleted, err := svc.DeleteArtifact(c.Context, meetingID)
	if err != nil {
		return fmt.Errorf("deleting artifact: %w", err)
	}
	if deleted {
		fmt.Fprintf(c.App.Writer, "Deleted artifact for meeting %s\n", meetingID)
	} else {
		fmt.Fprintf(c.App.Writer, "No artifact for meeting %s\n", meetingID)
	}

	if c.Bool("transcripts") {
		n, err := svc.DeleteTranscript(c.Context, meetingID)
		if err != nil {
			return fmt.Errorf("deleting transcript: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "Deleted %d segments for meeting %s\n", n, meetingID)
	}
	return nil
}

func printJSON(c *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}
