package main

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/urfave/cli/v2"

	"github.com/carebox/diabetes-risk/internal/infrastructure/config"
	"github.com/carebox/diabetes-risk/pkg/events"
	"github.com/carebox/diabetes-risk/pkg/kafka"
)

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Work with prediction events",
		Subcommands: []*cli.Command{
			{
				Name:  "tail",
				Usage: "Print prediction events as they are published",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "brokers",
						Usage:   "Comma-separated Kafka brokers",
						EnvVars: []string{"KAFKA_BROKERS"},
					},
					&cli.StringFlag{
						Name:    "topic",
						Value:   "diabetes.predictions",
						Usage:   "Topic to read",
						EnvVars: []string{"KAFKA_TOPIC"},
					},
					&cli.StringFlag{
						Name:  "group",
						Usage: "Consumer group; without one only new events are shown",
					},
					&cli.IntFlag{
						Name:  "max",
						Usage: "Stop after this many events (0 means no limit)",
					},
				},
				Action: runTail,
			},
		},
	}
}

func runTail(c *cli.Context) error {
	brokers := kafka.ParseBrokers(c.String("brokers"))
	if len(brokers) == 0 {
		return errors.New("--brokers or KAFKA_BROKERS is required")
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	var seen atomic.Int64
	limit := int64(c.Int("max"))

	handler := func(_ context.Context, msg kafka.Message) error {
		env, err := events.Unmarshal(msg.Value)
		if err != nil {
			return err
		}
		if err := printJSON(c.App.Writer, env); err != nil {
			return err
		}
		if limit > 0 && seen.Add(1) >= limit {
			cancel()
		}
		return nil
	}

	consumer, err := kafka.NewConsumer(kafka.Config{
		ClientID:      config.ServiceName + "-ctl",
		ConsumerGroup: c.String("group"),
		Brokers:       brokers,
	}, c.String("topic"), handler, cliLogger(c))
	if err != nil {
		return err
	}
	defer consumer.Close()

	return consumer.Start(ctx)
}
