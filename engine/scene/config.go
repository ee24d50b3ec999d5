package scene

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Carmen-Shannon/g4d-go/engine/display_mesh"
	"github.com/Carmen-Shannon/g4d-go/engine/transform"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is matched by every scene configuration validation error.
var ErrInvalidConfig = errors.New("invalid scene config")

// planeTolerance bounds the deviation from orthonormality accepted for a rotation plane.
const planeTolerance = 1e-6

// Config describes a scene in YAML.
type Config struct {
	Name       string           `yaml:"name"`
	View       ViewConfig       `yaml:"view"`
	Projection ProjectionConfig `yaml:"projection"`
	Objects    []ObjectConfig   `yaml:"objects"`
}

// ViewConfig builds the view transform: an optional view space remap followed by an optional
// look-at. An empty ViewConfig is the identity view.
type ViewConfig struct {
	ViewSpace [][4]float64  `yaml:"viewSpace,omitempty"`
	LookAt    *LookAtConfig `yaml:"lookAt,omitempty"`
}

// LookAtConfig holds the arguments of transform.Transform.LookAt.
type LookAtConfig struct {
	Eye    [4]float64 `yaml:"eye"`
	Target [4]float64 `yaml:"target"`
	Up1    [4]float64 `yaml:"up1"`
	Up2    [4]float64 `yaml:"up2"`
}

// ProjectionConfig holds the perspective projection parameters. FovY is in degrees.
type ProjectionConfig struct {
	FovY   float32 `yaml:"fovY,omitempty"`
	Aspect float32 `yaml:"aspect,omitempty"`
	Near   float32 `yaml:"near,omitempty"`
	Far    float32 `yaml:"far,omitempty"`
}

// ObjectConfig places one model in the scene. The model transform is built as
// translate, then each rotation in order, then scale, so vertices are scaled first.
type ObjectConfig struct {
	Name string `yaml:"name"`
	// Model is "hypercube" or the path of a binary model file.
	Model string `yaml:"model"`
	// Size is the edge length of a generated hypercube.
	Size      float32          `yaml:"size,omitempty"`
	Translate [4]float64       `yaml:"translate"`
	Rotations []RotationConfig `yaml:"rotations,omitempty"`
	Scale     *[4]float64      `yaml:"scale,omitempty"`
}

// RotationConfig is one plane rotation. Angle is in radians. A and B must be orthonormal unless
// Normalize is set, in which case they only need to be orthogonal.
type RotationConfig struct {
	Angle     float64    `yaml:"angle"`
	A         [4]float64 `yaml:"a"`
	B         [4]float64 `yaml:"b"`
	Normalize bool       `yaml:"normalize,omitempty"`
}

// ModelHypercube is the ObjectConfig.Model value selecting the generated tesseract.
const ModelHypercube = "hypercube"

func (c *Config) normalize() {
	c.Name = cmp.Or(c.Name, "scene")
	c.Projection.FovY = cmp.Or(c.Projection.FovY, 45)
	c.Projection.Aspect = cmp.Or(c.Projection.Aspect, DefaultAspect)
	c.Projection.Near = cmp.Or(c.Projection.Near, DefaultNear)
	c.Projection.Far = cmp.Or(c.Projection.Far, DefaultFar)
	for i := range c.Objects {
		o := &c.Objects[i]
		o.Name = cmp.Or(o.Name, fmt.Sprintf("object%d", i))
		o.Model = cmp.Or(o.Model, ModelHypercube)
		o.Size = cmp.Or(o.Size, 1)
	}
}

// Validate checks the configuration without building anything.
//
// Returns:
//   - error: an error matching ErrInvalidConfig describing the first problem
func (c *Config) Validate() error {
	if n := len(c.View.ViewSpace); n != 0 && n != 3 {
		return fmt.Errorf("%w: viewSpace needs 3 axes, got %d", ErrInvalidConfig, n)
	}
	p := c.Projection
	if p.FovY <= 0 || p.FovY >= 180 {
		return fmt.Errorf("%w: fovY %v out of (0, 180)", ErrInvalidConfig, p.FovY)
	}
	if p.Aspect <= 0 || p.Near <= 0 || p.Far <= p.Near {
		return fmt.Errorf("%w: projection aspect=%v near=%v far=%v", ErrInvalidConfig, p.Aspect, p.Near, p.Far)
	}
	for _, o := range c.Objects {
		if o.Size <= 0 {
			return fmt.Errorf("%w: object %q: size %v", ErrInvalidConfig, o.Name, o.Size)
		}
		for i, r := range o.Rotations {
			if _, _, err := r.plane(); err != nil {
				return fmt.Errorf("%w: object %q rotation %d: %v", ErrInvalidConfig, o.Name, i, err)
			}
		}
	}
	return nil
}

// ViewTransform builds the view transform.
//
// Returns:
//   - transform.Transform: the view
//   - error: the look-at basis error, if any
func (c *Config) ViewTransform() (transform.Transform, error) {
	v := transform.Identity()
	if len(c.View.ViewSpace) == 3 {
		a := c.View.ViewSpace
		v = v.ViewSpace(a[0], a[1], a[2])
	}
	if la := c.View.LookAt; la != nil {
		var err error
		v, err = v.LookAt(la.Eye, la.Target, la.Up1, la.Up2)
		if err != nil {
			return transform.Transform{}, fmt.Errorf("failed to build view: %w", err)
		}
	}
	return v, nil
}

// ProjectionMatrix builds the column-major perspective projection.
//
// Returns:
//   - [16]float32: the projection matrix
func (c *Config) ProjectionMatrix() [16]float32 {
	p := c.Projection
	return perspective(p.FovY*math.Pi/180, p.Aspect, p.Near, p.Far)
}

// Transform builds the object's model transform.
//
// Returns:
//   - transform.Transform: the model transform
//   - error: error if a rotation plane is invalid
func (o ObjectConfig) Transform() (transform.Transform, error) {
	t := transform.Identity().Translate(o.Translate[0], o.Translate[1], o.Translate[2], o.Translate[3])
	for i, r := range o.Rotations {
		a, b, err := r.plane()
		if err != nil {
			return transform.Transform{}, fmt.Errorf("object %q rotation %d: %w", o.Name, i, err)
		}
		t = t.Rotate(r.Angle, a, b)
	}
	if s := o.Scale; s != nil {
		t = t.Scale(s[0], s[1], s[2], s[3])
	}
	return t, nil
}

// plane returns the rotation plane vectors, normalized if requested, after checking that they
// are orthonormal.
func (r RotationConfig) plane() (transform.Vec4, transform.Vec4, error) {
	a, b := transform.Vec4(r.A), transform.Vec4(r.B)
	if r.Normalize {
		if a.Len() == 0 || b.Len() == 0 {
			return a, b, fmt.Errorf("%w: zero plane vector", ErrInvalidConfig)
		}
		a, b = a.Normalize(), b.Normalize()
	}
	if math.Abs(a.Len()-1) > planeTolerance || math.Abs(b.Len()-1) > planeTolerance {
		return a, b, fmt.Errorf("%w: plane vectors must be unit length (|a|=%g, |b|=%g)", ErrInvalidConfig, a.Len(), b.Len())
	}
	if d := a.Dot(b); math.Abs(d) > planeTolerance {
		return a, b, fmt.Errorf("%w: plane vectors must be orthogonal (a·b=%g)", ErrInvalidConfig, d)
	}
	return a, b, nil
}

// ParseConfig decodes, defaults and validates a YAML scene configuration.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the configuration
//   - error: a parse or validation error
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scene config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML scene configuration from disk.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Config: the configuration
//   - error: a read, parse or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig encodes cfg as YAML with defaults applied.
//
// Parameters:
//   - w: the destination
//   - cfg: the configuration
//
// Returns:
//   - error: an encode error
func WriteConfig(w io.Writer, cfg Config) error {
	cfg.normalize()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return fmt.Errorf("encode scene config: %w", err)
	}
	return enc.Close()
}

// MeshFactory creates and records the mesh drawn for one configured object.
type MeshFactory func(obj ObjectConfig) (display_mesh.DisplayMesh, error)

// NewSceneFromConfig builds a Scene from a validated configuration. Objects get their meshes from
// newMesh, which may be nil to build a scene of mesh-less objects for uniform computation only.
//
// Parameters:
//   - cfg: the configuration
//   - newMesh: creates each object's mesh; may be nil
//   - options: further scene options, applied after the configured view and projection
//
// Returns:
//   - Scene: the scene
//   - error: a view, transform or mesh creation error
func NewSceneFromConfig(cfg Config, newMesh MeshFactory, options ...SceneBuilderOption) (Scene, error) {
	view, err := cfg.ViewTransform()
	if err != nil {
		return nil, err
	}

	objects := make([]Object, 0, len(cfg.Objects))
	for _, oc := range cfg.Objects {
		t, err := oc.Transform()
		if err != nil {
			return nil, err
		}
		obj := Object{Name: oc.Name, Transform: t}
		if newMesh != nil {
			if obj.Mesh, err = newMesh(oc); err != nil {
				return nil, fmt.Errorf("failed to create mesh for object %q: %w", oc.Name, err)
			}
		}
		objects = append(objects, obj)
	}

	opts := append([]SceneBuilderOption{
		WithView(view),
		WithProjection(cfg.ProjectionMatrix()),
		WithObjects(objects...),
	}, options...)
	return NewScene(cfg.Name, opts...), nil
}

// DemoConfig returns the configuration of the tesseract demo at its initial state.
//
// Returns:
//   - Config: the demo configuration
func DemoConfig() Config {
	d := DemoState{}
	return Config{
		Name: "demo",
		View: ViewConfig{
			ViewSpace: [][4]float64{{0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}},
			LookAt: &LookAtConfig{
				Target: [4]float64{0, 0, 0, 1},
				Up1:    [4]float64{0, 1, 0, 0},
				Up2:    [4]float64{0, 0, 1, 0},
			},
		},
		Projection: ProjectionConfig{FovY: 45, Aspect: DefaultAspect, Near: DefaultNear, Far: DefaultFar},
		Objects: []ObjectConfig{{
			Name:      ModelHypercube,
			Model:     ModelHypercube,
			Size:      1,
			Translate: [4]float64{d.XDist, 0, 0, DemoDepth},
			Rotations: []RotationConfig{
				{Angle: d.Angle1, A: demoPlane1A, B: demoPlane1B},
				{Angle: d.Angle2, A: demoPlane2A, B: demoPlane2B},
			},
			Scale: &[4]float64{DemoScale, DemoScale, DemoScale, DemoScale},
		}},
	}
}
