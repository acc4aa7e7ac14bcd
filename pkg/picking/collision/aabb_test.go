package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewAABB(t *testing.T) {
	t.Parallel()

	b := NewAABB(mgl32.Vec3{4, -2, 6}, mgl32.Vec3{-1, 5, -3})

	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, b.Min)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, b.Max)
	assert.Equal(t, mgl32.Vec3{1.5, 1.5, 1.5}, b.Center())
}

func TestAABB_Quadrants(t *testing.T) {
	t.Parallel()

	b := NewAABB(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{4, 2, 3})
	q := b.Quadrants()

	assert.Equal(t, NewAABB(mgl32.Vec3{2, 1, -1}, mgl32.Vec3{4, 2, 3}), q[0], "q1 (+x,+y)")
	assert.Equal(t, NewAABB(mgl32.Vec3{0, 1, -1}, mgl32.Vec3{2, 2, 3}), q[1], "q2 (-x,+y)")
	assert.Equal(t, NewAABB(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{2, 1, 3}), q[2], "q3 (-x,-y)")
	assert.Equal(t, NewAABB(mgl32.Vec3{2, 0, -1}, mgl32.Vec3{4, 1, 3}), q[3], "q4 (+x,-y)")

	for _, quadrant := range q {
		assert.True(t, b.Contains(quadrant))
	}
}

func TestAABB_ContainsXY(t *testing.T) {
	t.Parallel()

	outer := NewAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 0})

	tests := []struct {
		name  string
		inner AABB
		want  bool
	}{
		{
			name:  "inside",
			inner: NewAABB(mgl32.Vec3{0.5, 0.5, 0}, mgl32.Vec3{1, 1, 0}),
			want:  true,
		},
		{
			name:  "equal",
			inner: outer,
			want:  true,
		},
		{
			name:  "z ignored",
			inner: NewAABB(mgl32.Vec3{0.5, 0.5, -10}, mgl32.Vec3{1, 1, 10}),
			want:  true,
		},
		{
			name:  "straddles x",
			inner: NewAABB(mgl32.Vec3{1.5, 0.5, 0}, mgl32.Vec3{2.5, 1, 0}),
			want:  false,
		},
		{
			name:  "straddles y",
			inner: NewAABB(mgl32.Vec3{0.5, -0.5, 0}, mgl32.Vec3{1, 1, 0}),
			want:  false,
		},
		{
			name:  "disjoint",
			inner: NewAABB(mgl32.Vec3{3, 3, 0}, mgl32.Vec3{4, 4, 0}),
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, outer.ContainsXY(tt.inner))
		})
	}

	assert.False(t, outer.Contains(NewAABB(mgl32.Vec3{0.5, 0.5, -10}, mgl32.Vec3{1, 1, 10})))
}

func TestAABB_ExpandZ(t *testing.T) {
	t.Parallel()

	b := NewAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 1})
	b.ExpandZ(NewAABB(mgl32.Vec3{10, 10, -3}, mgl32.Vec3{11, 11, 0.5}))

	assert.Equal(t, NewAABB(mgl32.Vec3{0, 0, -3}, mgl32.Vec3{2, 2, 1}), b)

	b.ExpandZ(NewAABB(mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 0, 7}))
	assert.Equal(t, NewAABB(mgl32.Vec3{0, 0, -3}, mgl32.Vec3{2, 2, 7}), b)
}

func TestAABBFromTriangles(t *testing.T) {
	t.Parallel()

	q := Quad{{0, 1, 0.5}, {1, 1, 0.2}, {1, 0, -0.4}, {0, 0, 0.1}}
	tri1, tri2 := q.Triangles()

	assert.Equal(t, Triangle{q[0], q[1], q[3]}, tri1)
	assert.Equal(t, Triangle{q[1], q[2], q[3]}, tri2)

	b := BoxFromTriangles(tri1, tri2)
	assert.Equal(t, mgl32.Vec3{0, 0, -0.4}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 0.5}, b.Max)

	assert.Equal(t, AABB{}, AABBFromTriangles())
}
