// Package gocommand mounts the job submission handlers on the go-command
// registry and dispatcher runtime.
package gocommand

import (
	"context"
	"fmt"
	"strings"

	gocmd "github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"

	qpucommand "github.com/quantabridge/go-qpu/command"
	"github.com/quantabridge/go-qpu/core"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := gocmd.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(gocmd.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *gocmd.Registry
}

func NewRegistryAdapter(registry *gocmd.Registry) *RegistryAdapter {
	if registry == nil {
		registry = gocmd.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *gocmd.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(cmd)
}

func (a *RegistryAdapter) AddResolver(key string, resolver gocmd.Resolver) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.AddResolver(strings.TrimSpace(key), resolver)
}

// AddQueueResolver mirrors registered commands into the go-job queue
// registry, so submit and poll tasks can run through the queue runtime.
func (a *RegistryAdapter) AddQueueResolver(key string, queueRegistry *jobqueuecommand.Registry) error {
	if queueRegistry == nil {
		return fmt.Errorf("gocommand: queue registry is required")
	}
	return a.AddResolver(key, jobqueuecommand.QueueResolver(queueRegistry))
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	if a == nil || a.registry == nil {
		return false
	}
	return a.registry.HasResolver(strings.TrimSpace(key))
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeCommand[T any](cmd gocmd.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd gocmd.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	subscription := SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.RegisterCommand(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// ExecutionMount holds the live dispatcher subscriptions for the mounted
// submission handlers.
type ExecutionMount struct {
	subscriptions []commanddispatcher.Subscription
}

func (m *ExecutionMount) Unsubscribe() {
	if m == nil {
		return
	}
	for _, subscription := range m.subscriptions {
		if subscription != nil {
			subscription.Unsubscribe()
		}
	}
	m.subscriptions = nil
}

// MountExecutionHandlers registers the submit command and the status and
// results queries on the registry, subscribes them on the dispatcher, and
// initializes the registry so queue resolvers see all three.
func MountExecutionHandlers(
	adapter *RegistryAdapter,
	service qpucommand.ExecutionService,
	runnerOpts ...runner.Option,
) (*ExecutionMount, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if service == nil {
		return nil, fmt.Errorf("gocommand: execution service is required")
	}

	mount := &ExecutionMount{}
	submitSub, err := RegisterAndSubscribe(adapter, qpucommand.NewSubmitJobCommand(service), runnerOpts...)
	if err != nil {
		return nil, err
	}
	mount.subscriptions = append(mount.subscriptions, submitSub)

	statusSub, err := RegisterAndSubscribe(adapter, qpucommand.NewJobStatusQuery(service), runnerOpts...)
	if err != nil {
		mount.Unsubscribe()
		return nil, err
	}
	mount.subscriptions = append(mount.subscriptions, statusSub)

	resultsSub, err := RegisterAndSubscribe(adapter, qpucommand.NewJobResultsQuery(service), runnerOpts...)
	if err != nil {
		mount.Unsubscribe()
		return nil, err
	}
	mount.subscriptions = append(mount.subscriptions, resultsSub)

	if err := adapter.Initialize(); err != nil {
		mount.Unsubscribe()
		return nil, err
	}
	return mount, nil
}

// SubmitJob dispatches a submit message through the mounted handlers and
// returns the accepted submission.
func SubmitJob(ctx context.Context, req qpucommand.SubmitJobRequest) (core.JobSubmission, error) {
	collector := gocmd.NewResult[core.JobSubmission]()
	ctx = gocmd.ContextWithResult(ctx, collector)
	if err := commanddispatcher.Dispatch(ctx, qpucommand.SubmitJobMessage{Request: req}); err != nil {
		return core.JobSubmission{}, err
	}
	out, ok := collector.Load()
	if !ok {
		return core.JobSubmission{}, fmt.Errorf("gocommand: submit handler stored no submission")
	}
	return out, nil
}

// JobStatus dispatches a status query for one submission.
func JobStatus(ctx context.Context, submissionID string) (core.JobPoll, error) {
	collector := gocmd.NewResult[core.JobPoll]()
	ctx = gocmd.ContextWithResult(ctx, collector)
	if err := commanddispatcher.Dispatch(ctx, qpucommand.JobStatusMessage{SubmissionID: submissionID}); err != nil {
		return core.JobPoll{}, err
	}
	out, ok := collector.Load()
	if !ok {
		return core.JobPoll{}, fmt.Errorf("gocommand: status handler stored no poll")
	}
	return out, nil
}

// JobResults dispatches a results query for one completed submission.
func JobResults(ctx context.Context, submissionID string) (core.SampleResult, error) {
	collector := gocmd.NewResult[core.SampleResult]()
	ctx = gocmd.ContextWithResult(ctx, collector)
	if err := commanddispatcher.Dispatch(ctx, qpucommand.JobResultsMessage{SubmissionID: submissionID}); err != nil {
		return core.SampleResult{}, err
	}
	out, ok := collector.Load()
	if !ok {
		return core.SampleResult{}, fmt.Errorf("gocommand: results handler stored no sample")
	}
	return out, nil
}
