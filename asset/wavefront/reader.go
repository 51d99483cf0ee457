// Package wavefront extracts triangle geometry from Wavefront OBJ scenes.
package wavefront

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/threedslider/appleseed/asset"
	"github.com/threedslider/appleseed/log"
	"github.com/threedslider/appleseed/types"
)

// A triangle primitive and its bounding box.
type Triangle struct {
	Vertices [3]types.Vec3
	BBox     types.AABB3

	// Index of the object (o/g statement) this triangle belongs to.
	Object int
}

// Scene holds the triangles parsed from a scene file and the files it includes.
type Scene struct {
	Objects   []string
	Triangles []Triangle
}

// BBoxes returns the bounding box of each triangle, in triangle order.
func (sc *Scene) BBoxes() []types.AABB3 {
	boxes := make([]types.AABB3, len(sc.Triangles))
	for i := range sc.Triangles {
		boxes[i] = sc.Triangles[i].BBox
	}
	return boxes
}

// Bounds returns the bounding box of all scene triangles.
func (sc *Scene) Bounds() types.AABB3 {
	bounds := types.AABB3FromPoints()
	for i := range sc.Triangles {
		bounds.Insert(&sc.Triangles[i].BBox)
	}
	return bounds
}

type reader struct {
	logger log.Logger

	scene *Scene

	// Parsed vertices across all included files.
	vertexList []types.Vec3

	// An error stack that provides additional error information when
	// scene files include other files.
	errStack []string
}

// Read a scene from a file path or http/https URL.
func ReadFile(pathToScene string) (*Scene, error) {
	res, err := asset.NewResource(pathToScene, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return Read(res)
}

// Read a scene from a resource. Statements other than vertices, faces,
// object names and includes are ignored.
func Read(res *asset.Resource) (*Scene, error) {
	r := &reader{
		logger: log.New("wavefront reader"),
		scene:  &Scene{},
	}

	r.logger.Noticef(`parsing scene from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}

	r.logger.Infof(
		"parsed %d triangles (%d objects) in %d ms",
		len(r.scene.Triangles), len(r.scene.Objects), time.Since(start).Nanoseconds()/1e6,
	)
	return r.scene, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *reader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return fmt.Errorf("%s", strings.Trim(
		fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
		"\n",
	))
}

// Push a frame to the error stack.
func (r *reader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *reader) popFrame() {
	r.errStack = r.errStack[1:]
}

func (r *reader) parse(res *asset.Resource) error {
	// Positive vertex indices are relative to the first vertex of the file
	// that references them.
	relVertexOffset := len(r.vertexList)

	lineNum := 0
	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "call"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			if err := r.include(res, lineNum, lineTokens[1]); err != nil {
				return err
			}
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}
			r.scene.Objects = append(r.scene.Objects, lineTokens[1])
		case "f":
			triangles, err := r.parseFace(lineTokens, relVertexOffset)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.scene.Triangles = append(r.scene.Triangles, triangles...)
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, "%s", err.Error())
	}
	return nil
}

// Parse an included scene file.
func (r *reader) include(parent *asset.Resource, lineNum int, target string) error {
	r.pushFrame(fmt.Sprintf("referenced from %s:%d [call]", parent.Path(), lineNum))

	incRes, err := asset.NewResource(target, parent)
	if err != nil {
		return r.emitError(parent.Path(), lineNum, "%s", err.Error())
	}
	defer incRes.Close()

	if err = r.parse(incRes); err != nil {
		return err
	}

	r.popFrame()
	return nil
}

// Parse a face into triangles. Faces with more than 3 vertices are split into
// a triangle fan around their first vertex.
func (r *reader) parseFace(lineTokens []string, relVertexOffset int) ([]Triangle, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	vertices := make([]types.Vec3, len(lineTokens)-1)
	expIndices := 0
	for arg := range vertices {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return nil, fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[vOffset]
	}

	object := len(r.scene.Objects) - 1
	if object < 0 {
		r.scene.Objects = append(r.scene.Objects, "default")
		object = 0
	}

	triangles := make([]Triangle, 0, len(vertices)-2)
	for i := 1; i < len(vertices)-1; i++ {
		tri := Triangle{
			Vertices: [3]types.Vec3{vertices[0], vertices[i], vertices[i+1]},
			Object:   object,
		}
		tri.BBox = types.AABB3FromPoints(tri.Vertices[:]...)
		triangles = append(triangles, tri)
	}

	return triangles, nil
}

// Given an index for a face vertex calculate the proper offset into the
// vertex list. Wavefront format can also use negative indices to reference
// elements from the end of the list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
