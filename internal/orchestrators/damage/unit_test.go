package damage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/chaosforge/damage-api/internal/bridges"
	"github.com/chaosforge/damage-api/internal/bridges/memory"
	bridgesmock "github.com/chaosforge/damage-api/internal/bridges/mock"
	"github.com/chaosforge/damage-api/internal/cache"
	calculatormock "github.com/chaosforge/damage-api/internal/calculator/mock"
	"github.com/chaosforge/damage-api/internal/config"
	"github.com/chaosforge/damage-api/internal/damage"
	"github.com/chaosforge/damage-api/internal/errors"
	"github.com/chaosforge/damage-api/internal/events"
	"github.com/chaosforge/damage-api/internal/modifier"
	modifiermock "github.com/chaosforge/damage-api/internal/modifier/mock"
	orchestrator "github.com/chaosforge/damage-api/internal/orchestrators/damage"
	mockclock "github.com/chaosforge/damage-api/internal/pkg/clock/mock"
	idgenmock "github.com/chaosforge/damage-api/internal/pkg/idgen/mock"
	"github.com/chaosforge/damage-api/internal/scheduler"
	"github.com/chaosforge/damage-api/internal/testutils"
)

// OrchestratorUnitSuite isolates the orchestrator from the real calculator
// and processor so stage failures and outcome mapping can be driven
// directly.
type OrchestratorUnitSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	ctx  context.Context

	attributes *memory.AttributeStore
	calc       *calculatormock.MockCalculator
	proc       *modifiermock.MockProcessor
	clock      *mockclock.MockClock
	idGen      *idgenmock.MockGenerator
	captured   []events.Event
	baseConfig *orchestrator.Config
	service    orchestrator.Service
}

func (s *OrchestratorUnitSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.captured = nil

	s.attributes = memory.NewAttributeStore()
	s.attributes.AddActor(&memory.Actor{
		ID:        "hero",
		Stats:     map[string]float64{"attack": 10},
		Resources: map[string]float64{"health": 150},
	})

	path := testutils.WriteConfigFile(s.T(), pipelineConfigYAML)
	source, err := config.NewFileSource(path)
	s.Require().NoError(err)
	store, err := config.NewStore(&config.StoreConfig{Source: source})
	s.Require().NoError(err)
	s.Require().NoError(store.Load(s.ctx))

	attribute, err := bridges.NewAttributeBridge(&bridges.AttributeBridgeConfig{Client: s.attributes})
	s.Require().NoError(err)
	effect, err := bridges.NewEffectBridge(&bridges.EffectBridgeConfig{Client: memory.NewEffectStore()})
	s.Require().NoError(err)
	affinity, err := bridges.NewAffinityBridge(&bridges.AffinityBridgeConfig{Client: memory.NewAffinityStore()})
	s.Require().NoError(err)
	action, err := bridges.NewActionBridge(&bridges.ActionBridgeConfig{Client: memory.NewActionStore()})
	s.Require().NoError(err)

	dropCache, err := cache.New(nil)
	s.Require().NoError(err)
	sched, err := scheduler.New(nil)
	s.Require().NoError(err)

	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(events.SubscriberFunc(func(_ context.Context, evt events.Event) error {
		s.captured = append(s.captured, evt)
		return nil
	}))

	s.calc = calculatormock.NewMockCalculator(s.ctrl)
	s.proc = modifiermock.NewMockProcessor(s.ctrl)
	s.clock = mockclock.NewMockClock(s.ctrl)
	s.idGen = idgenmock.NewMockGenerator(s.ctrl)

	s.baseConfig = &orchestrator.Config{
		AttributeBridge: attribute,
		AffinityBridge:  affinity,
		EffectBridge:    effect,
		ActionBridge:    action,
		Attributes:      s.attributes,
		Store:           store,
		Calculator:      s.calc,
		Processor:       s.proc,
		Scheduler:       sched,
		Cache:           dropCache,
		Dispatcher:      dispatcher,
		Clock:           s.clock,
		IDGen:           s.idGen,
	}

	s.service, err = orchestrator.New(s.baseConfig)
	s.Require().NoError(err)
}

// newService rebuilds the orchestrator with a different attribute client
// and call timeout, keeping the rest of the suite's wiring.
func (s *OrchestratorUnitSuite) newService(attrs bridges.AttributeClient, timeout time.Duration) orchestrator.Service {
	cfg := *s.baseConfig
	cfg.Attributes = attrs
	cfg.CallTimeout = timeout

	svc, err := orchestrator.New(&cfg)
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorUnitSuite) TestCalculatorFailureLeavesResourcesUntouched() {
	s.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	s.calc.EXPECT().
		CalculateBase(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(float64(0), errors.Configurationf("damage type %q has no element formula", "physical"))

	out, err := s.service.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{
		Request: s.unitRequest(100),
	})
	s.Error(err)
	s.True(errors.IsConfiguration(err))
	s.Nil(out)
	s.Equal(float64(150), s.attributes.Resource("hero", "health"))
	s.Empty(s.captured)
}

func (s *OrchestratorUnitSuite) TestProcessorFailureLeavesResourcesUntouched() {
	s.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	s.calc.EXPECT().
		CalculateBase(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(float64(100), nil)
	s.proc.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *modifier.Input) (*modifier.Outcome, error) {
			s.Equal(float64(100), in.Base)
			return nil, errors.InvalidArgument("custom modifier has no tag")
		})

	out, err := s.service.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{
		Request: s.unitRequest(100),
	})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Nil(out)
	s.Equal(float64(150), s.attributes.Resource("hero", "health"))
	s.Empty(s.captured)
}

func (s *OrchestratorUnitSuite) TestEventStampingUsesClockAndIDGen() {
	at := time.Date(2025, 9, 14, 8, 30, 0, 0, time.UTC)
	s.calc.EXPECT().
		CalculateBase(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(float64(40), nil)
	s.proc.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(&modifier.Outcome{Final: 40}, nil)
	s.clock.EXPECT().Now().Return(at).AnyTimes()
	s.idGen.EXPECT().Generate().Return("evt_unit_1")

	out, err := s.service.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{
		Request: s.unitRequest(40),
	})
	s.Require().NoError(err)

	s.Equal(float64(110), s.attributes.Resource("hero", "health"))
	s.Require().Len(s.captured, 1)
	s.Equal("evt_unit_1", s.captured[0].ID)
	s.Equal(events.TypeDamageApplied, s.captured[0].Type)
	s.Equal(at, s.captured[0].Timestamp)
	s.Equal(at, out.Result.Timestamp)
}

func (s *OrchestratorUnitSuite) TestAbsorbedOutcomeHealsTarget() {
	s.attributes.AddActor(&memory.Actor{
		ID:           "wounded",
		Resources:    map[string]float64{"health": 100},
		MaxResources: map[string]float64{"health": 200},
	})
	s.calc.EXPECT().
		CalculateBase(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(float64(60), nil)
	s.proc.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(&modifier.Outcome{Final: 60, Absorbed: true}, nil)
	s.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	s.idGen.EXPECT().Generate().Return("evt_unit_2")

	req := s.unitRequest(60)
	req.TargetID = "wounded"
	out, err := s.service.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{Request: req})
	s.Require().NoError(err)

	s.True(out.Result.AbsorbedAsHealing)
	s.Equal(float64(160), s.attributes.Resource("wounded", "health"))
	s.Require().Len(s.captured, 1)
	s.Equal(events.TypeDamageAbsorbed, s.captured[0].Type)
}

func (s *OrchestratorUnitSuite) TestResourceApplicationHonorsCallTimeout() {
	attrs := bridgesmock.NewMockAttributeClient(s.ctrl)
	attrs.EXPECT().ActorExists(gomock.Any(), "hero").Return(true, nil)
	attrs.EXPECT().ApplyResourceDelta(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *bridges.ResourceDeltaInput) (*bridges.ResourceDeltaOutput, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	s.calc.EXPECT().
		CalculateBase(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(float64(40), nil)
	s.proc.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(&modifier.Outcome{Final: 40}, nil)
	s.clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	svc := s.newService(attrs, 5*time.Millisecond)
	out, err := svc.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{
		Request: s.unitRequest(40),
	})
	s.Error(err)
	s.Equal(errors.CodeResourceApplication, errors.GetCode(err))
	s.Nil(out)
	s.Empty(s.captured)
}

func (s *OrchestratorUnitSuite) TestActorExistenceCheckHonorsCallTimeout() {
	attrs := bridgesmock.NewMockAttributeClient(s.ctrl)
	attrs.EXPECT().ActorExists(gomock.Any(), "hero").
		DoAndReturn(func(ctx context.Context, _ string) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		})

	svc := s.newService(attrs, 5*time.Millisecond)
	out, err := svc.ApplyDamage(s.ctx, &orchestrator.ApplyDamageInput{
		Request: s.unitRequest(40),
	})
	s.Error(err)
	s.True(errors.IsIntegration(err))
	s.Nil(out)
}

func (s *OrchestratorUnitSuite) unitRequest(base float64) *damage.Request {
	return &damage.Request{
		TargetID:     "hero",
		DamageTypeID: "physical",
		BaseDamage:   base,
		Source:       damage.SourceDirect,
	}
}

func TestOrchestratorUnitSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorUnitSuite))
}
