// Package character hosts the foot IK on a standing biped: a capsule, a
// skeleton with foot sockets, and a place in the world.
package character

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/physanim/internal/footik"
	"github.com/Faultbox/physanim/internal/logger"
	"github.com/Faultbox/physanim/internal/world"
	"github.com/Faultbox/physanim/pkg/math"
)

// Character errors.
var (
	ErrInvalidConfig = errors.New("invalid character config")
	ErrNotStarted    = errors.New("character has not begun play")
)

// StandingTolerance is the speed below which the character counts as
// standing and the foot IK runs.
const StandingTolerance = math.SmallNumber

// Config describes a character.
type Config struct {
	// ID is the world actor id of the character's capsule.
	ID         world.ActorID
	Radius     float32
	HalfHeight float32

	// PhysicsBone roots the subtree that blends into physical animation.
	PhysicsBone    string
	PhysicsProfile string

	IK footik.Params
}

// DefaultConfig returns the mannequin setup.
func DefaultConfig() Config {
	return Config{
		ID:             1,
		Radius:         42,
		HalfHeight:     96,
		PhysicsBone:    BoneHead,
		PhysicsProfile: ProfilePhysics,
		IK:             footik.DefaultParams(),
	}
}

// Character is a standing biped whose feet follow the ground.
type Character struct {
	cfg      Config
	world    *world.World
	capsule  *Capsule
	skeleton *Skeleton
	solver   *footik.Solver
	log      *zap.Logger

	location math.Vec3
	velocity math.Vec3
	yaw      float32

	started bool
	ikTicks uint64
}

// New places a character with the default skeleton into w.
func New(cfg Config, w *world.World) (*Character, error) {
	return NewWithSkeleton(cfg, w, DefaultSkeleton())
}

// NewWithSkeleton places a character with a custom skeleton into w.
func NewWithSkeleton(cfg Config, w *world.World, skel *Skeleton) (*Character, error) {
	if w == nil || skel == nil {
		return nil, fmt.Errorf("%w: world and skeleton are required", ErrInvalidConfig)
	}
	if cfg.ID == world.TerrainActor {
		return nil, fmt.Errorf("%w: actor id %d is reserved for terrain", ErrInvalidConfig, cfg.ID)
	}
	if cfg.IK.Frame != footik.FrameZUp {
		return nil, fmt.Errorf("%w: world is Z-up, IK frame is %s", ErrInvalidConfig, cfg.IK.Frame)
	}

	if p, taken := w.Prop(cfg.ID); taken {
		return nil, fmt.Errorf("%w: actor id %d is used by prop %q", ErrInvalidConfig, cfg.ID, p.Name)
	}

	capsule, err := NewCapsule(cfg.Radius, cfg.HalfHeight)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c := &Character{
		cfg:      cfg,
		world:    w,
		capsule:  capsule,
		skeleton: skel,
		log:      logger.Named("character").With(zap.Uint32("actor", uint32(cfg.ID))),
	}

	c.solver, err = footik.NewSolver(cfg.IK, footik.Host{
		World:    ground{view: w.Excluding(cfg.ID)},
		Skeleton: c,
		Capsule:  capsule,
		Actor:    c,
	})
	if err != nil {
		return nil, err
	}

	if err := c.syncCollision(); err != nil {
		return nil, err
	}
	return c, nil
}

// BeginPlay blends the configured bone subtree into physical animation and
// initialises the foot IK against the current capsule size.
func (c *Character) BeginPlay() error {
	profiled, err := c.skeleton.ApplyProfileBelow(c.cfg.PhysicsBone, c.cfg.PhysicsProfile, true, true)
	if err != nil {
		return fmt.Errorf("applying physical animation profile: %w", err)
	}
	simulated, err := c.skeleton.SetSimulatePhysicsBelow(c.cfg.PhysicsBone, true, false)
	if err != nil {
		return fmt.Errorf("enabling physics simulation: %w", err)
	}

	if err := c.solver.Initialize(); err != nil {
		return fmt.Errorf("initializing foot IK: %w", err)
	}
	c.started = true

	c.log.Info("character began play",
		zap.String("physics_bone", c.cfg.PhysicsBone),
		zap.Int("profiled_bodies", profiled),
		zap.Int("simulated_bodies", simulated),
		zap.Float32("half_height", c.capsule.HalfHeight()),
	)
	return nil
}

// Tick advances the character by dt seconds. The character drifts with its
// velocity; the foot IK runs only while it stands still. ran reports
// whether the IK ran.
func (c *Character) Tick(dt float32) (ran bool, err error) {
	if !c.started {
		return false, ErrNotStarted
	}
	if dt < 0 || !math.IsFinite(dt) {
		return false, fmt.Errorf("%w: %v", footik.ErrInvalidDelta, dt)
	}

	if c.Standing() {
		if _, err := c.solver.Update(dt); err != nil {
			return false, err
		}
		c.ikTicks++
		ran = true
	} else {
		c.location = c.location.Add(c.velocity.Scale(dt))
	}

	if err := c.syncCollision(); err != nil {
		return ran, err
	}
	return ran, nil
}

// Standing reports whether the character's speed is nearly zero.
func (c *Character) Standing() bool {
	return math.IsNearlyZero(c.Speed(), StandingTolerance)
}

// syncCollision keeps the capsule's world box in step with the character.
func (c *Character) syncCollision() error {
	lo, hi := c.capsule.Box(c.location)
	p, err := world.NewProp(c.cfg.ID, "capsule", lo, hi)
	if err != nil {
		return err
	}
	c.world.Upsert(p)
	return nil
}

// SocketLocation returns a socket's world position.
func (c *Character) SocketLocation(name string) (math.Vec3, bool) {
	local, ok := c.skeleton.LocalSocket(name)
	if !ok {
		return math.Vec3{}, false
	}
	return c.location.Add(local.RotateZ(c.yaw)), true
}

// Location returns the capsule centre.
func (c *Character) Location() math.Vec3 {
	return c.location
}

// SetLocation teleports the character.
func (c *Character) SetLocation(loc math.Vec3) error {
	if !loc.IsFinite() {
		return fmt.Errorf("%w: location %v", ErrInvalidConfig, loc)
	}
	c.location = loc
	return c.syncCollision()
}

// Velocity returns the current velocity.
func (c *Character) Velocity() math.Vec3 {
	return c.velocity
}

// SetVelocity sets the velocity used by Tick.
func (c *Character) SetVelocity(v math.Vec3) {
	c.velocity = v
}

// Speed returns the magnitude of the velocity.
func (c *Character) Speed() float32 {
	return c.velocity.Length()
}

// Yaw returns the heading in degrees.
func (c *Character) Yaw() float32 {
	return c.yaw
}

// SetYaw turns the character to yaw degrees.
func (c *Character) SetYaw(yaw float32) {
	c.yaw = math.NormalizeAxis(yaw)
}

// IKState returns the latest foot IK corrections.
func (c *Character) IKState() footik.State {
	return c.solver.State()
}

// IKTicks returns how many ticks ran the foot IK.
func (c *Character) IKTicks() uint64 {
	return c.ikTicks
}

// Capsule returns the collision capsule.
func (c *Character) Capsule() *Capsule {
	return c.capsule
}

// Skeleton returns the skeleton.
func (c *Character) Skeleton() *Skeleton {
	return c.skeleton
}

// ID returns the character's world actor id.
func (c *Character) ID() world.ActorID {
	return c.cfg.ID
}
