package character

import (
	"errors"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/Faultbox/physanim/pkg/math"
)

// Skeleton errors.
var (
	ErrUnknownBone   = errors.New("unknown bone")
	ErrDuplicateBone = errors.New("duplicate bone")
)

// Bone is one rigid body of the skeleton. Position is relative to the
// actor's location with zero yaw.
type Bone struct {
	Name     string
	Parent   string
	Position math.Vec3

	// Profile is the physical animation profile applied to this body, or
	// empty when the body follows pure animation.
	Profile string
	// Simulate is true when the body is driven by physics.
	Simulate bool

	profiles map[string]bool
}

// HasProfile reports whether the body carries settings for a profile.
func (b *Bone) HasProfile(name string) bool {
	return b.profiles[name]
}

// Socket is a named attachment point on a bone.
type Socket struct {
	Name   string
	Bone   string
	Offset math.Vec3
}

// Skeleton is a bone hierarchy with sockets. Bones are kept in insertion
// order; a parent is always added before its children.
type Skeleton struct {
	bones   *orderedmap.OrderedMap[string, *Bone]
	sockets *orderedmap.OrderedMap[string, Socket]
}

// NewSkeleton returns an empty skeleton.
func NewSkeleton() *Skeleton {
	return &Skeleton{
		bones:   orderedmap.NewOrderedMap[string, *Bone](),
		sockets: orderedmap.NewOrderedMap[string, Socket](),
	}
}

// AddBone appends a bone. parent must already exist unless empty.
func (s *Skeleton) AddBone(name, parent string, pos math.Vec3) error {
	if _, ok := s.bones.Get(name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBone, name)
	}
	if parent != "" {
		if _, ok := s.bones.Get(parent); !ok {
			return fmt.Errorf("%w: parent %q of %q", ErrUnknownBone, parent, name)
		}
	}
	s.bones.Set(name, &Bone{Name: name, Parent: parent, Position: pos, profiles: map[string]bool{}})
	return nil
}

// AddSocket attaches a socket to an existing bone, replacing any socket of
// the same name.
func (s *Skeleton) AddSocket(name, bone string, offset math.Vec3) error {
	if _, ok := s.bones.Get(bone); !ok {
		return fmt.Errorf("%w: %q for socket %q", ErrUnknownBone, bone, name)
	}
	s.sockets.Set(name, Socket{Name: name, Bone: bone, Offset: offset})
	return nil
}

// DefineProfile marks bones as carrying settings for a profile.
func (s *Skeleton) DefineProfile(profile string, bones ...string) error {
	for _, name := range bones {
		b, ok := s.bones.Get(name)
		if !ok {
			return fmt.Errorf("%w: %q in profile %q", ErrUnknownBone, name, profile)
		}
		b.profiles[profile] = true
	}
	return nil
}

// Bone returns a copy of the named bone.
func (s *Skeleton) Bone(name string) (Bone, bool) {
	b, ok := s.bones.Get(name)
	if !ok {
		return Bone{}, false
	}
	return *b, true
}

// Bones returns the bone names in hierarchy order.
func (s *Skeleton) Bones() []string {
	return s.bones.Keys()
}

// LocalSocket returns a socket's position relative to the actor, before yaw.
func (s *Skeleton) LocalSocket(name string) (math.Vec3, bool) {
	sock, ok := s.sockets.Get(name)
	if !ok {
		return math.Vec3{}, false
	}
	b, _ := s.bones.Get(sock.Bone)
	return b.Position.Add(sock.Offset), true
}

// Below returns the bones in the subtree rooted at name, in hierarchy order.
func (s *Skeleton) Below(name string, includeSelf bool) ([]string, error) {
	if _, ok := s.bones.Get(name); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBone, name)
	}

	in := map[string]bool{name: true}
	var out []string
	if includeSelf {
		out = append(out, name)
	}
	for el := s.bones.Front(); el != nil; el = el.Next() {
		if el.Key == name || !in[el.Value.Parent] {
			continue
		}
		in[el.Key] = true
		out = append(out, el.Key)
	}
	return out, nil
}

// ApplyProfileBelow applies a physical animation profile to every body in
// the subtree. Bodies without settings for the profile keep their current
// profile, or lose it when clearNotFound is set. It returns the number of
// bodies that received the profile.
func (s *Skeleton) ApplyProfileBelow(bone, profile string, includeSelf, clearNotFound bool) (int, error) {
	names, err := s.Below(bone, includeSelf)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, name := range names {
		b, _ := s.bones.Get(name)
		switch {
		case b.HasProfile(profile):
			b.Profile = profile
			applied++
		case clearNotFound:
			b.Profile = ""
		}
	}
	return applied, nil
}

// SetSimulatePhysicsBelow switches physics simulation for every body in the
// subtree and returns how many bodies were touched.
func (s *Skeleton) SetSimulatePhysicsBelow(bone string, simulate, includeSelf bool) (int, error) {
	names, err := s.Below(bone, includeSelf)
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		b, _ := s.bones.Get(name)
		b.Simulate = simulate
	}
	return len(names), nil
}

// Bone and socket names of the default mannequin.
const (
	BonePelvis = "pelvis"
	BoneHead   = "head"

	SocketLeftFoot  = "foot_l"
	SocketRightFoot = "foot_r"

	ProfilePhysics = "Physics"
)

// DefaultSkeleton builds a mannequin-style biped for a 96 unit half-height
// capsule. The feet sit 12 units either side of the centre line.
func DefaultSkeleton() *Skeleton {
	s := NewSkeleton()

	bones := []struct {
		name, parent string
		pos          math.Vec3
	}{
		{"root", "", math.Vec3{Z: -96}},
		{BonePelvis, "root", math.Vec3{Z: -2}},
		{"spine_01", BonePelvis, math.Vec3{Z: 10}},
		{"spine_02", "spine_01", math.Vec3{Z: 25}},
		{"spine_03", "spine_02", math.Vec3{Z: 40}},
		{"neck_01", "spine_03", math.Vec3{Z: 58}},
		{BoneHead, "neck_01", math.Vec3{Z: 66}},
		{"jaw", BoneHead, math.Vec3{X: 6, Z: 62}},
		{"clavicle_l", "spine_03", math.Vec3{Y: -4, Z: 52}},
		{"upperarm_l", "clavicle_l", math.Vec3{Y: -18, Z: 50}},
		{"lowerarm_l", "upperarm_l", math.Vec3{Y: -44, Z: 50}},
		{"hand_l", "lowerarm_l", math.Vec3{Y: -68, Z: 50}},
		{"clavicle_r", "spine_03", math.Vec3{Y: 4, Z: 52}},
		{"upperarm_r", "clavicle_r", math.Vec3{Y: 18, Z: 50}},
		{"lowerarm_r", "upperarm_r", math.Vec3{Y: 44, Z: 50}},
		{"hand_r", "lowerarm_r", math.Vec3{Y: 68, Z: 50}},
		{"thigh_l", BonePelvis, math.Vec3{Y: -12, Z: -6}},
		{"calf_l", "thigh_l", math.Vec3{Y: -12, Z: -48}},
		{"foot_l", "calf_l", math.Vec3{Y: -12, Z: -86}},
		{"ball_l", "foot_l", math.Vec3{X: 14, Y: -12, Z: -93}},
		{"thigh_r", BonePelvis, math.Vec3{Y: 12, Z: -6}},
		{"calf_r", "thigh_r", math.Vec3{Y: 12, Z: -48}},
		{"foot_r", "calf_r", math.Vec3{Y: 12, Z: -86}},
		{"ball_r", "foot_r", math.Vec3{X: 14, Y: 12, Z: -93}},
	}
	for _, b := range bones {
		must(s.AddBone(b.name, b.parent, b.pos))
	}

	must(s.AddSocket(SocketLeftFoot, "foot_l", math.Vec3{Z: -8}))
	must(s.AddSocket(SocketRightFoot, "foot_r", math.Vec3{Z: -8}))

	// The root has no body.
	must(s.DefineProfile(ProfilePhysics, s.Bones()[1:]...))

	return s
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
