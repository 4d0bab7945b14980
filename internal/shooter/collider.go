package shooter

import (
	"math"

	"github.com/vovakirdan/vshooter/internal/core"
)

// ShapeKind selects the collision shape.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle
	ShapeCapsule
)

// Shape is an immutable collision shape centered on its owner's position.
type Shape struct {
	Kind   ShapeKind
	Radius float64   // Circle only
	Half   core.Vec2 // Rectangle and capsule half extents
}

// Circle returns a circle shape.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Rectangle returns an axis-aligned rectangle of the given full size.
func Rectangle(w, h float64) Shape {
	return Shape{Kind: ShapeRectangle, Half: core.V(w/2, h/2)}
}

// Capsule returns a capsule of the given full size. Capsules are tested as
// their bounding rectangles.
func Capsule(w, h float64) Shape {
	return Shape{Kind: ShapeCapsule, Half: core.V(w/2, h/2)}
}

// Tag identifies the gameplay role of a collider.
type Tag uint8

const (
	TagPlayer Tag = iota
	TagEnemy
	TagPlayerBullet
	TagEnemyBullet
	TagItem
)

func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagEnemy:
		return "enemy"
	case TagPlayerBullet:
		return "player_bullet"
	case TagEnemyBullet:
		return "enemy_bullet"
	case TagItem:
		return "item"
	}
	return "unknown"
}

// Collider is the single collision volume of a collidable entity.
type Collider struct {
	Shape Shape
	Tag   Tag
}

// Body is the spatial part shared by every collidable component.
type Body struct {
	Pos      core.Vec2
	Collider Collider
}

// Overlaps reports whether two shapes at the given positions intersect.
// Touching shapes do not overlap. Mixed shape kinds never collide.
func Overlaps(a Shape, pa core.Vec2, b Shape, pb core.Vec2) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ShapeCircle:
		return pa.Dist(pb) < a.Radius+b.Radius
	case ShapeRectangle, ShapeCapsule:
		return math.Abs(pa.X-pb.X) < a.Half.X+b.Half.X &&
			math.Abs(pa.Y-pb.Y) < a.Half.Y+b.Half.Y
	}
	return false
}

// shapeFromConfig builds a shape from catalog settings.
func shapeFromConfig(kind string, w, h float64) Shape {
	switch kind {
	case "circle":
		return Circle(math.Max(w, h) / 2)
	case "capsule":
		return Capsule(w, h)
	default:
		return Rectangle(w, h)
	}
}
