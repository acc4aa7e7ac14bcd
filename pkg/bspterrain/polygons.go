package bspterrain

import (
	"github.com/galaco/bsp"
	"github.com/galaco/bsp/lumps"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

const maxSurfinfoVerts = 32

type polygon struct {
	verts    [maxSurfinfoVerts]mgl32.Vec3
	numVerts int
	normal   mgl32.Vec3
}

// buildPolygons reassembles each face's vertex loop from the surface edge lump.
// Faces without texinfo (nodraw, skip, hint) and faces with too few or too
// many edges are dropped.
func buildPolygons(bspfile *bsp.Bsp) []polygon {
	surfaces := bspfile.Lump(bsp.LumpFaces).(*lumps.Face).GetData()
	surfEdges := bspfile.Lump(bsp.LumpSurfEdges).(*lumps.Surfedge).GetData()
	vertices := bspfile.Lump(bsp.LumpVertexes).(*lumps.Vertex).GetData()
	edges := bspfile.Lump(bsp.LumpEdges).(*lumps.Edge).GetData()
	planes := bspfile.Lump(bsp.LumpPlanes).(*lumps.Planes).GetData()

	polygons := make([]polygon, 0, len(surfaces))

	for _, surface := range surfaces {
		firstEdge := int(surface.FirstEdge)
		numEdges := int(surface.NumEdges)

		if numEdges < 3 || numEdges > maxSurfinfoVerts || surface.TexInfo <= 0 {
			continue
		}

		var poly polygon

		for i := 0; i < numEdges; i++ {
			edgeIndex := surfEdges[firstEdge+i]
			if edgeIndex >= 0 {
				poly.verts[i] = vertices[edges[edgeIndex][0]]
			} else {
				poly.verts[i] = vertices[edges[-edgeIndex][1]]
			}
		}

		poly.numVerts = numEdges
		poly.normal = planes[surface.Planenum].Normal
		polygons = append(polygons, poly)
	}

	return polygons
}

// walkable reports whether the polygon's plane faces up steeply enough to stand on.
func (p *polygon) walkable(minNormalZ float32) bool {
	return p.normal.Z() >= minNormalZ
}

// quads fans the convex polygon into quads sharing its first vertex.
// A trailing triangle becomes a quad with its last vertex repeated, so its
// second triangle is degenerate and never hit.
func (p *polygon) quads() []collision.Quad {
	return fanQuads(p.verts[:p.numVerts])
}

func fanQuads(verts []mgl32.Vec3) []collision.Quad {
	n := len(verts)
	if n < 3 {
		return nil
	}

	out := make([]collision.Quad, 0, (n-1)/2)

	i := 1
	for ; i+2 < n; i += 2 {
		out = append(out, collision.Quad{verts[0], verts[i], verts[i+1], verts[i+2]})
	}

	if i+1 < n {
		out = append(out, collision.Quad{verts[0], verts[i], verts[i+1], verts[i+1]})
	}

	return out
}
