package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/cppmaven/singularity/pkg/events"
	"github.com/cppmaven/singularity/pkg/logging"
	"github.com/cppmaven/singularity/pkg/singularity"
)

// meter is the sample managed type. Its constructor takes arguments, so it
// cannot be managed by a conventional default-constructed singleton.
type meter struct {
	reading int
	unit    string
}

func newMeter(reading int, unit string) *meter {
	return &meter{reading: reading, unit: unit}
}

var factoryCmd = &cobra.Command{
	Use:   "factory",
	Short: "Run create/use/destroy cycles without global retrieval",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewComponentLogger("demo")
		mgr := singularity.New[meter](managerOptions()...)

		for cycle := 1; cycle <= settings.Cycles; cycle++ {
			instance, err := mgr.Create(func() (*meter, error) {
				return newMeter(cycle*10, "kWh"), nil
			})
			if err != nil {
				return fmt.Errorf("cycle %d: %w", cycle, err)
			}

			// The instance is used through the reference returned by
			// Create; nothing else can reach it.
			fmt.Printf("cycle %d: meter reads %d %s\n", cycle, instance.reading, instance.unit)

			if _, err := mgr.Get(); err != nil {
				logger.Debug("get refused as expected", "error", err)
			}

			if err := mgr.Destroy(); err != nil {
				return fmt.Errorf("cycle %d: %w", cycle, err)
			}
		}

		return nil
	},
}

var globalCmd = &cobra.Command{
	Use:   "global",
	Short: "Create with global retrieval and read the instance from other goroutines",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewComponentLogger("demo")

		bus := events.NewEventBus()
		bus.Subscribe(events.InstanceCreatedEvent{}.Topic(), func(event any) {
			e := event.(events.InstanceCreatedEvent)
			logger.Info("lifecycle event", "topic", e.Topic(), "type", e.TypeName, "instance_id", e.InstanceID)
		})
		bus.Subscribe(events.InstanceDestroyedEvent{}.Topic(), func(event any) {
			e := event.(events.InstanceDestroyedEvent)
			logger.Info("lifecycle event", "topic", e.Topic(), "type", e.TypeName, "instance_id", e.InstanceID)
		})

		opts := append(managerOptions(),
			singularity.WithAccess(singularity.Global),
			singularity.WithPublisher(bus),
		)
		mgr := singularity.New[meter](opts...)

		created, err := mgr.CreateGlobal(func() (*meter, error) {
			return newMeter(100, "kWh"), nil
		})
		if err != nil {
			return err
		}
		fmt.Printf("created meter reading %d %s\n", created.reading, created.unit)

		// Readers obtain the instance through the type alone.
		const readers = 4
		var wg sync.WaitGroup
		for i := 0; i < readers; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				instance, err := mgr.Get()
				if err != nil {
					logger.Error("get failed", "reader", i, "error", err)
					return
				}
				fmt.Printf("reader %d sees reading %d\n", i, instance.reading)
			}()
		}
		wg.Wait()

		if err := mgr.Destroy(); err != nil {
			return err
		}

		bus.(*events.InMemoryBus).Shutdown()
		return nil
	},
}

// managerOptions translates the loaded settings into manager options.
func managerOptions() []singularity.Option {
	opts := []singularity.Option{
		singularity.WithLogger(logging.NewComponentLogger("singularity")),
	}
	if settings.Exclusive {
		opts = append(opts, singularity.WithConcurrency(singularity.Exclusive))
	} else {
		opts = append(opts, singularity.WithConcurrency(singularity.None))
	}
	if settings.Global {
		opts = append(opts, singularity.WithAccess(singularity.Global))
	}
	return opts
}

func init() {
	rootCmd.AddCommand(factoryCmd)
	rootCmd.AddCommand(globalCmd)
}
