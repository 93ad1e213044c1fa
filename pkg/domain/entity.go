package domain

import (
	"fmt"
	"strings"
)

// EntityType is a classification tag that a symbolic entity may or may not carry.
type EntityType int

const (
	Animal EntityType = iota
	Monster
	Item
	Player
	Living
)

// EntityTypes is the full alphabet, in declaration order.
var EntityTypes = []EntityType{Animal, Monster, Item, Player, Living}

func (t EntityType) String() string {
	switch t {
	case Animal:
		return "Animal"
	case Monster:
		return "Monster"
	case Item:
		return "Item"
	case Player:
		return "Player"
	case Living:
		return "Living"
	default:
		return fmt.Sprintf("EntityType(%d)", int(t))
	}
}

// ParseEntityType accepts a tag name, case-insensitively.
func ParseEntityType(s string) (EntityType, error) {
	for _, t := range EntityTypes {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid entity type %q", s)
}

// MutuallyExclusive reports whether no entity can carry both t and other.
// The relation is symmetric. Item excludes every other tag but not itself.
func (t EntityType) MutuallyExclusive(other EntityType) bool {
	switch t {
	case Animal:
		return other == Monster || other == Player || other == Item
	case Monster:
		return other == Animal || other == Player || other == Item
	case Item:
		return other != Item
	case Player:
		return other == Animal || other == Monster || other == Item
	case Living:
		return other == Item
	default:
		panic(fmt.Sprintf("domain: entity type %d outside the alphabet", int(t)))
	}
}

// EntityTypeSet is a set of EntityType values. The zero value is empty.
type EntityTypeSet uint8

// AllEntityTypes is the set containing the whole alphabet.
const AllEntityTypes EntityTypeSet = 1<<Animal | 1<<Monster | 1<<Item | 1<<Player | 1<<Living

// NewEntityTypeSet builds a set from the given tags.
func NewEntityTypeSet(types ...EntityType) EntityTypeSet {
	var s EntityTypeSet
	for _, t := range types {
		s = s.With(t)
	}
	return s
}

func (s EntityTypeSet) Has(t EntityType) bool              { return s&(1<<t) != 0 }
func (s EntityTypeSet) With(t EntityType) EntityTypeSet    { return s | 1<<t }
func (s EntityTypeSet) Without(t EntityType) EntityTypeSet { return s &^ (1 << t) }

// Slice returns the members in alphabet order.
func (s EntityTypeSet) Slice() []EntityType {
	out := make([]EntityType, 0, len(EntityTypes))
	for _, t := range EntityTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s EntityTypeSet) String() string {
	members := s.Slice()
	names := make([]string, len(members))
	for i, t := range members {
		names[i] = t.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// IotaEntity is a symbolic reference to an in-world entity.
// guaranteed holds the tags proven true, possible the tags not yet ruled out.
type IotaEntity struct {
	name              string
	uuid              string
	guaranteed        EntityTypeSet
	possible          EntityTypeSet
	guaranteedInRange bool
}

func (IotaEntity) Kind() Kind { return KindEntity }
func (IotaEntity) isIota()    {}

// String renders the entity as its name.
func (e IotaEntity) String() string { return e.name }

func (e IotaEntity) Name() string                   { return e.name }
func (e IotaEntity) UUID() string                   { return e.uuid }
func (e IotaEntity) Guaranteed() EntityTypeSet      { return e.guaranteed }
func (e IotaEntity) Possible() EntityTypeSet        { return e.possible }
func (e IotaEntity) GuaranteedInRange() bool        { return e.guaranteedInRange }
func (e IotaEntity) IsGuaranteed(t EntityType) bool { return e.guaranteed.Has(t) }
func (e IotaEntity) IsPossible(t EntityType) bool   { return e.possible.Has(t) }

// AddGuaranteed proves t true. It returns false, leaving the entity unchanged,
// if t is exclusive with a guaranteed tag or has already been ruled out.
// On success every tag exclusive with t is removed from possible.
func (e *IotaEntity) AddGuaranteed(t EntityType) bool {
	if !e.possible.Has(t) {
		return false
	}
	for _, g := range e.guaranteed.Slice() {
		if g.MutuallyExclusive(t) {
			return false
		}
	}
	for _, p := range e.possible.Slice() {
		if p.MutuallyExclusive(t) {
			e.possible = e.possible.Without(p)
		}
	}
	e.guaranteed = e.guaranteed.With(t)
	return true
}

// RemovePossible rules t out. It returns false if t is already guaranteed.
func (e *IotaEntity) RemovePossible(t EntityType) bool {
	if e.guaranteed.Has(t) {
		return false
	}
	e.possible = e.possible.Without(t)
	return true
}

type entityOp struct {
	guarantee bool
	t         EntityType
}

// EntityBuilder accumulates the configuration of an IotaEntity.
// Nothing is validated until Build.
type EntityBuilder struct {
	name              string
	uuid              string
	ops               []entityOp
	guaranteedInRange *bool
}

// NewEntity starts building an entity. The uuid defaults to the name.
func NewEntity(name string) *EntityBuilder {
	return &EntityBuilder{name: name, uuid: name}
}

func (b *EntityBuilder) UUID(uuid string) *EntityBuilder {
	b.uuid = uuid
	return b
}

func (b *EntityBuilder) AddGuaranteed(t EntityType) *EntityBuilder {
	b.ops = append(b.ops, entityOp{guarantee: true, t: t})
	return b
}

func (b *EntityBuilder) RemovePossible(t EntityType) *EntityBuilder {
	b.ops = append(b.ops, entityOp{guarantee: false, t: t})
	return b
}

// GuaranteedInRange overrides the default (true).
func (b *EntityBuilder) GuaranteedInRange(inRange bool) *EntityBuilder {
	b.guaranteedInRange = &inRange
	return b
}

// Build replays the recorded operations on a fresh entity, whose possible set is
// the whole alphabet and whose guaranteed set is empty.
func (b *EntityBuilder) Build() (IotaEntity, error) {
	e := IotaEntity{
		name:              b.name,
		uuid:              b.uuid,
		possible:          AllEntityTypes,
		guaranteedInRange: true,
	}
	if b.guaranteedInRange != nil {
		e.guaranteedInRange = *b.guaranteedInRange
	}

	for _, op := range b.ops {
		if op.guarantee {
			if !e.AddGuaranteed(op.t) {
				return IotaEntity{}, &EntityConstraintError{Entity: b.name, Operation: "add_guaranteed", Type: op.t}
			}
			continue
		}
		if !e.RemovePossible(op.t) {
			return IotaEntity{}, &EntityConstraintError{Entity: b.name, Operation: "remove_possible", Type: op.t}
		}
	}
	return e, nil
}
