package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/hurricaneship/internal/object"
	"github.com/tomz197/hurricaneship/internal/physics"
)

func (s *Simulation) addPickup(kind object.Kind, variant object.Variant, cat object.Category, p physics.Vec2) object.Handle {
	return s.reg.Add(&object.Entity{
		Kind:     kind,
		Variant:  variant,
		Category: cat,
		Position: p,
		Scale:    s.cfg.PickupScale,
		Size:     s.cfg.PickupSize,
		Lifetime: s.cfg.PickupLifetime,
	})
}

func shipHandle(t *testing.T, s *Simulation) object.Handle {
	t.Helper()
	ship := s.reg.Ship()
	require.NotNil(t, ship)
	return ship.Handle
}

func TestShipMeteorContactsEndGame(t *testing.T) {
	s := newTestSim(t, nil)
	s.OnFrame(0, nil)
	ship := shipHandle(t, s)

	var shipRemovals, gameOvers, blinks int
	for i := 0; i < 5; i++ {
		m := s.addMeteorAt(physics.Vec2{X: 1})
		intents := s.OnCollision(object.CategoryMeteor, object.CategoryShip, m, ship)
		for _, h := range removedHandles(intents) {
			if h == ship {
				shipRemovals++
			}
		}
		gameOvers += countIntents[GameOver](intents)
		blinks += countIntents[PlayEffect](intents)

		if i < 2 {
			assert.Equal(t, 2-i, s.State().Lives)
			assert.False(t, s.State().GameOver)
			assert.Contains(t, removedHandles(intents), m)
		}
	}

	assert.Equal(t, 0, s.State().Lives)
	assert.True(t, s.State().GameOver)
	assert.Equal(t, 1, shipRemovals)
	assert.Equal(t, 1, gameOvers)
	assert.Equal(t, 3, blinks)
	_, alive := s.Ship()
	assert.False(t, alive)
}

func TestLastLifeScenario(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.StartingLives = 1 })
	s.OnFrame(0, nil)
	ship := shipHandle(t, s)
	m := s.addMeteorAt(physics.Vec2{})

	intents := s.OnCollision(object.CategoryShip, object.CategoryMeteor, ship, m)

	assert.Equal(t, 0, s.State().Lives)
	assert.True(t, s.State().GameOver)
	assert.Equal(t, []object.Handle{m, ship}, removedHandles(intents))
	assert.Equal(t, 1, countIntents[GameOver](intents))

	blink, ok := intents[1].(PlayEffect)
	require.True(t, ok)
	assert.Equal(t, EffectBlink, blink.Effect)
	assert.Equal(t, 3.0, blink.Duration)
}

func TestDuplicateMeteorContactCountsOnce(t *testing.T) {
	s := newTestSim(t, nil)
	ship := shipHandle(t, s)
	m := s.addMeteorAt(physics.Vec2{})

	s.OnCollision(object.CategoryShip, object.CategoryMeteor, ship, m)
	intents := s.OnCollision(object.CategoryShip, object.CategoryMeteor, ship, m)

	assert.Empty(t, intents)
	assert.Equal(t, 2, s.State().Lives)
}

func TestShrinkAndRestore(t *testing.T) {
	s := newTestSim(t, nil)
	s.OnFrame(0, nil)
	ship := shipHandle(t, s)
	d := s.addPickup(object.KindHazard, object.VariantShrink, object.CategoryDecreaser, physics.Vec2{})

	intents := s.OnCollision(object.CategoryDecreaser, object.CategoryShip, d, ship)
	assert.Equal(t, []object.Handle{d}, removedHandles(intents))
	assert.Contains(t, intents, SetScale{Handle: ship, Scale: 0.3})
	assert.Equal(t, 0.3, s.reg.Ship().Scale)
	assert.Equal(t, 3, s.State().Lives)

	var restored []Intent
	for i := 0; i < 12; i++ {
		for _, in := range s.OnFrame(0.25, nil) {
			if _, ok := in.(SetScale); ok {
				restored = append(restored, in)
			}
		}
		if i < 11 {
			assert.Empty(t, restored, "restored early at frame %d", i)
		}
	}
	assert.Equal(t, []Intent{SetScale{Handle: ship, Scale: 0.8}}, restored)
	assert.Equal(t, 0.8, s.reg.Ship().Scale)
}

func TestGuardPickupAttachesGuardAndSweepsMeteors(t *testing.T) {
	s := newTestSim(t, nil)
	s.OnFrame(0, nil)
	ship := shipHandle(t, s)

	near := s.addMeteorAt(physics.Vec2{X: 30})
	far := s.addMeteorAt(physics.Vec2{X: 500})
	p := s.addPickup(object.KindPowerUp, object.VariantGuardSpawner, object.CategoryGuard, physics.Vec2{})

	intents := s.OnCollision(object.CategoryShip, object.CategoryGuard, ship, p)

	guards := s.reg.Guards()
	require.Len(t, guards, 1)
	g := guards[0]
	assert.Equal(t, ship, g.Owner)
	assert.Equal(t, 1.2, g.Scale)

	assert.Equal(t, []object.Handle{p, near}, removedHandles(intents))
	assert.Contains(t, intents, PlayEffect{Handle: g.Handle, Effect: EffectOrbit, Duration: Forever})
	assert.NotNil(t, s.reg.Get(far))
	assert.Equal(t, 3, s.State().Lives)
}

func TestSingleMeteorSlotSweepsOnlyNewest(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.SingleMeteorSlot = true })
	ship := shipHandle(t, s)

	older := s.addMeteorAt(physics.Vec2{X: 20})
	newer := s.addMeteorAt(physics.Vec2{X: -20})
	p := s.addPickup(object.KindPowerUp, object.VariantGuardSpawner, object.CategoryGuard, physics.Vec2{})

	s.OnCollision(object.CategoryShip, object.CategoryGuard, ship, p)

	assert.NotNil(t, s.reg.Get(older))
	assert.Nil(t, s.reg.Get(newer))
}

func TestGuardFollowsShipAndDiesWithIt(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.StartingLives = 1 })
	ship := shipHandle(t, s)
	p := s.addPickup(object.KindPowerUp, object.VariantGuardSpawner, object.CategoryGuard, physics.Vec2{})
	s.OnCollision(object.CategoryShip, object.CategoryGuard, ship, p)
	g := s.reg.Guards()[0].Handle

	s.OnFrame(0.1, &physics.Vec2{X: 100})
	gv, err := s.Entity(g)
	require.NoError(t, err)
	sv, _ := s.Ship()
	assert.Equal(t, sv.Position, gv.Position)

	m := s.addMeteorAt(physics.Vec2{X: 600})
	intents := s.OnCollision(object.CategoryShip, object.CategoryMeteor, ship, m)
	assert.Equal(t, []object.Handle{m, ship, g}, removedHandles(intents))
}

func TestGuardMeteorContact(t *testing.T) {
	s := newTestSim(t, nil)
	ship := shipHandle(t, s)
	p := s.addPickup(object.KindPowerUp, object.VariantGuardSpawner, object.CategoryGuard, physics.Vec2{})
	s.OnCollision(object.CategoryShip, object.CategoryGuard, ship, p)
	g := s.reg.Guards()[0].Handle

	m := s.addMeteorAt(physics.Vec2{X: 400})
	intents := s.OnCollision(object.CategoryMeteor, object.CategoryGuard, m, g)
	assert.Equal(t, []object.Handle{m}, removedHandles(intents))
	assert.Equal(t, 3, s.State().Lives)
}

func TestGuardPowerUpDoesNotDestroyMeteor(t *testing.T) {
	s := newTestSim(t, nil)
	p := s.addPickup(object.KindPowerUp, object.VariantGuardSpawner, object.CategoryGuard, physics.Vec2{X: 300})
	m := s.addMeteorAt(physics.Vec2{X: 300})

	assert.Empty(t, s.OnCollision(object.CategoryGuard, object.CategoryMeteor, p, m))
	assert.NotNil(t, s.reg.Get(m))
}

func TestOtherPairsHaveNoEffect(t *testing.T) {
	s := newTestSim(t, nil)
	ship := shipHandle(t, s)
	grow := s.addPickup(object.KindHazard, object.VariantGrow, object.CategoryIncreaser, physics.Vec2{})
	gold := s.addPickup(object.KindPowerUp, object.VariantGold, object.CategoryGoldPowerUp, physics.Vec2{})
	d := s.addPickup(object.KindHazard, object.VariantShrink, object.CategoryDecreaser, physics.Vec2{})
	m := s.addMeteorAt(physics.Vec2{})

	assert.Empty(t, s.OnCollision(object.CategoryShip, object.CategoryIncreaser, ship, grow))
	assert.Empty(t, s.OnCollision(object.CategoryGoldPowerUp, object.CategoryShip, gold, ship))
	assert.Empty(t, s.OnCollision(object.CategoryMeteor, object.CategoryDecreaser, m, d), "no ship in the pair")
	assert.NotNil(t, s.reg.Get(d))
	assert.NotNil(t, s.reg.Get(m))
	assert.Equal(t, 3, s.State().Lives)
}

func TestContactWithRemovedEntityIsNoop(t *testing.T) {
	s := newTestSim(t, nil)
	ship := shipHandle(t, s)
	d := s.addPickup(object.KindHazard, object.VariantShrink, object.CategoryDecreaser, physics.Vec2{})
	s.reg.Remove(d)

	assert.Empty(t, s.OnCollision(object.CategoryShip, object.CategoryDecreaser, ship, d))
	assert.Equal(t, 0.8, s.reg.Ship().Scale)
}

func TestContactsIgnoredAfterGameOver(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.StartingLives = 1 })
	ship := shipHandle(t, s)
	s.OnCollision(object.CategoryShip, object.CategoryMeteor, ship, s.addMeteorAt(physics.Vec2{}))
	require.True(t, s.State().GameOver)

	m := s.addMeteorAt(physics.Vec2{})
	assert.Nil(t, s.OnCollision(object.CategoryShip, object.CategoryMeteor, ship, m))
	assert.Equal(t, 0, s.State().Lives)
}

func TestContactBeforeFirstFrameKeepsShipSpawnForOnFrame(t *testing.T) {
	s := newTestSim(t, nil)
	ship := shipHandle(t, s)

	assert.Nil(t, s.OnCollision(object.CategoryMeteor, object.CategoryIncreaser, 98, 99))

	m := s.addMeteorAt(physics.Vec2{})
	intents := s.OnCollision(object.CategoryShip, object.CategoryMeteor, ship, m)
	assert.Equal(t, 0, countIntents[SpawnEntity](intents))
	assert.Equal(t, []object.Handle{m}, removedHandles(intents))

	first := s.OnFrame(0, nil)
	require.NotEmpty(t, first)
	spawn, ok := first[0].(SpawnEntity)
	require.True(t, ok)
	assert.Equal(t, ship, spawn.Handle)
	assert.Equal(t, object.KindShip, spawn.Kind)
}

func TestShipRulesNeedTheLiveShip(t *testing.T) {
	s := newTestSim(t, nil)
	m1 := s.addMeteorAt(physics.Vec2{X: 10})
	m2 := s.addMeteorAt(physics.Vec2{X: -10})

	assert.Empty(t, s.OnCollision(object.CategoryShip, object.CategoryMeteor, m1, m2))
	assert.Equal(t, 3, s.State().Lives)
	assert.NotNil(t, s.reg.Get(m1))
	assert.NotNil(t, s.reg.Get(m2))
}
