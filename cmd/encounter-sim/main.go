// Package main provides the encounter simulator binary: it loads a scenario,
// rolls initiative, and drives the combat loop headless until one side falls.
package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/kmarsden/gametable/internal/config"
	"github.com/kmarsden/gametable/internal/game/combat"
	"github.com/kmarsden/gametable/internal/game/dice"
	"github.com/kmarsden/gametable/internal/game/scenario"
	"github.com/kmarsden/gametable/internal/game/session"
	"github.com/kmarsden/gametable/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/sim.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "", "scenario YAML file; overrides the configured path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	path := cfg.Engine.ScenarioPath
	if *scenarioPath != "" {
		path = *scenarioPath
	}
	sc, err := scenario.LoadFile(path)
	if err != nil {
		logger.Fatal("loading scenario", zap.String("path", path), zap.Error(err))
	}

	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	manager := session.NewManager(roller, logger, nil)

	state, err := manager.StartEncounter(sc.SessionID, sc.Players, sc.Monsters, sc.Environment)
	if err != nil {
		logger.Fatal("starting encounter", zap.Error(err))
	}

	runEncounter(manager, state, cfg.Engine, logger)

	logger.Info("encounter finished",
		zap.Int("rounds", state.Round),
		zap.Int("events", len(state.History)),
		zap.Int("living_players", len(state.LivingPlayers())),
		zap.Int("living_monsters", len(state.LivingMonsters())),
	)
}

// runEncounter drives turns until one side falls or the round cap hits.
// Player turns are auto-resolved with a basic attack against the most
// threatening monster stand-in: the first living one.
func runEncounter(manager *session.Manager, state *combat.State, eng config.EngineConfig, logger *zap.Logger) {
	for state.Active && state.Round <= eng.MaxRounds {
		if len(state.LivingPlayers()) == 0 || len(state.LivingMonsters()) == 0 {
			manager.EndEncounter(state.SessionID)
			return
		}

		actor := state.CurrentActor()
		if actor == nil {
			manager.EndEncounter(state.SessionID)
			return
		}

		var err error
		if actor.IsMonster() {
			_, err = manager.RunMonsterTurn(state.SessionID, eng.MonsterActionsPerPass)
		} else {
			_, err = manager.SubmitAction(state.SessionID, playerAction(state, actor))
		}
		if err != nil {
			logger.Error("turn failed", zap.String("actor", actor.ID), zap.Error(err))
			manager.EndEncounter(state.SessionID)
			return
		}
	}
	manager.EndEncounter(state.SessionID)
}

// playerAction builds the simulator's stand-in player decision: a basic
// attack on the first living monster.
func playerAction(state *combat.State, actor *combat.Combatant) combat.Action {
	target := state.LivingMonsters()[0]
	return combat.Action{
		Type:        combat.ActionAttack,
		ActorID:     actor.ID,
		TargetID:    target.ID,
		AttackBonus: actor.AttackBonus,
		DamageExpr:  actor.MeleeDamageExpr(),
	}
}
