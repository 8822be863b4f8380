package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"
	"github.com/jaysparkx/LambdaCloudWrapper/lambdacloud"
	"github.com/rs/zerolog"
)

var (
	errNoCapacity    = errors.New("no instance type has capacity")
	errNotActive     = errors.New("instance did not become active")
	errUnexpectedIDs = errors.New("unexpected number of launched instances")
)

// runIDKey carries the run ID in the context. The client sends it as
// X-Request-ID on every call of the run.
type runIDKey struct{}

// smoke walks one lifecycle against the API: key, listings, an optional launch,
// restart and terminate, then key removal. The key is removed even when a later
// step fails.
type smoke struct {
	runID          string
	client         *lambdacloud.Client
	clock          clock.Clock
	logger         zerolog.Logger
	launch         bool
	keyPrefix      string
	instancePrefix string
	pollInterval   time.Duration
	activeTimeout  time.Duration
}

func (s *smoke) run(ctx context.Context) (err error) {
	ctx = context.WithValue(ctx, runIDKey{}, s.runID)

	key, err := s.client.AddSSHKey(ctx, lambdacloud.AddSSHKeyRequest{
		Name:      s.keyPrefix + "-" + shortID(),
		PublicKey: nil,
	})
	if err != nil {
		return fmt.Errorf("failed to add ssh key: %w", err)
	}

	s.logger.Info().Str("key_id", key.ID).Str("key_name", key.Name).Msg("SSH key created")

	defer func() {
		// The run context may already be cancelled; cleanup gets its own.
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
		defer cancel()

		if delErr := s.client.DeleteSSHKey(cleanupCtx, key.ID); delErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to delete ssh key: %w", delErr))

			return
		}

		s.logger.Info().Str("key_id", key.ID).Msg("SSH key deleted")
	}()

	instances, err := s.client.ListInstances(ctx)
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	s.logger.Info().Int("count", len(instances)).Msg("Listed instances")

	types, err := s.client.ListInstanceTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list instance types: %w", err)
	}

	s.logger.Info().Int("count", len(types)).Msg("Listed instance types")

	keys, err := s.client.ListSSHKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list ssh keys: %w", err)
	}

	for _, k := range keys {
		s.logger.Info().Str("key_id", k.ID).Str("key_name", k.Name).Msg("Listed SSH key")
	}

	fileSystems, err := s.client.ListFileSystems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list file systems: %w", err)
	}

	for _, fs := range fileSystems {
		s.logger.Info().
			Str("file_system", fs.Name).
			Str("region", fs.Region.Name).
			Bool("in_use", fs.IsInUse).
			Msg("Listed file system")
	}

	if !s.launch {
		s.logger.Info().Msg("Launch disabled, skipping instance lifecycle")

		return nil
	}

	return s.launchAndTerminate(ctx, key.Name, types)
}

func (s *smoke) launchAndTerminate(
	ctx context.Context,
	keyName string,
	types map[string]lambdacloud.InstanceTypeInfo,
) error {
	typeName, region, err := pickCapacity(types)
	if err != nil {
		return err
	}

	name := s.instancePrefix + "-" + shortID()

	s.logger.Info().
		Str("instance_type", typeName).
		Str("region", region).
		Str("hourly_price", types[typeName].InstanceType.HourlyPrice().StringFixed(2)).
		Msg("Launching instance")

	ids, err := s.client.LaunchInstance(ctx, lambdacloud.LaunchRequest{
		RegionName:       region,
		InstanceTypeName: typeName,
		SSHKeyNames:      []string{keyName},
		FileSystemNames:  nil,
		Quantity:         nil,
		Name:             &name,
	})
	if err != nil {
		return fmt.Errorf("failed to launch instance: %w", err)
	}

	if len(ids) != 1 {
		return fmt.Errorf("%w: %d", errUnexpectedIDs, len(ids))
	}

	instanceID := ids[0]

	waitErr := s.waitActive(ctx, instanceID)
	if waitErr == nil {
		waitErr = s.restart(ctx, instanceID)
	}

	// Terminate even when the instance never came up; it is billed either way.
	terminateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
	defer cancel()

	terminated, err := s.client.TerminateInstances(terminateCtx, instanceID)
	if err != nil {
		return errors.Join(waitErr, fmt.Errorf("failed to terminate instance %s: %w", instanceID, err))
	}

	s.logger.Info().Int("count", len(terminated)).Str("instance_id", instanceID).Msg("Instance terminated")

	return waitErr
}

func (s *smoke) waitActive(ctx context.Context, instanceID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.activeTimeout)
	defer cancel()

	ticker := s.clock.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		instance, err := s.client.GetInstance(ctx, instanceID)
		if err != nil {
			return fmt.Errorf("failed to get instance %s: %w", instanceID, err)
		}

		s.logger.Info().Str("instance_id", instanceID).Str("status", string(instance.Status)).Msg("Polled instance")

		switch instance.Status {
		case lambdacloud.InstanceStatusActive:
			return nil
		case lambdacloud.InstanceStatusTerminated, lambdacloud.InstanceStatusTerminating:
			return fmt.Errorf("%w: status %s", errNotActive, instance.Status)
		case lambdacloud.InstanceStatusBooting, lambdacloud.InstanceStatusUnhealthy:
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", errNotActive, ctx.Err())
		case <-ticker.C():
		}
	}
}

func (s *smoke) restart(ctx context.Context, instanceID string) error {
	restarted, err := s.client.RestartInstances(ctx, instanceID)
	if err != nil {
		return fmt.Errorf("failed to restart instance %s: %w", instanceID, err)
	}

	s.logger.Info().Int("count", len(restarted)).Str("instance_id", instanceID).Msg("Instance restarted")

	return s.waitActive(ctx, instanceID)
}

// pickCapacity returns the first type, by name, with capacity and its first
// available region.
func pickCapacity(types map[string]lambdacloud.InstanceTypeInfo) (string, string, error) {
	for _, name := range slices.Sorted(maps.Keys(types)) {
		info := types[name]
		if info.HasCapacity() {
			return name, info.RegionsWithCapacityAvailable[0].Name, nil
		}
	}

	return "", "", errNoCapacity
}

func shortID() string {
	return uuid.NewString()[:8]
}
