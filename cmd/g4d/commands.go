package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Carmen-Shannon/g4d-go/common"
	"github.com/Carmen-Shannon/g4d-go/engine/display_mesh"
	"github.com/Carmen-Shannon/g4d-go/engine/loader"
	"github.com/Carmen-Shannon/g4d-go/engine/model"
	"github.com/Carmen-Shannon/g4d-go/engine/profiler"
	"github.com/Carmen-Shannon/g4d-go/engine/scene"
	"github.com/Carmen-Shannon/g4d-go/engine/vertex_layout"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

var topologies = map[string]display_mesh.Topology{
	"triangles":  display_mesh.TopologyTriangles,
	"lines":      display_mesh.TopologyLines,
	"tetrahedra": display_mesh.TopologyTetrahedra,
}

func parseTopology(name string) (display_mesh.Topology, error) {
	t, ok := topologies[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown topology %q", name)
	}
	return t, nil
}

// uploadHost uploads m into a mesh backed by host memory.
func uploadHost(m model.Model, topology display_mesh.Topology) (display_mesh.DisplayMesh, *display_mesh.MemoryBackend, error) {
	backend := display_mesh.NewMemoryBackend()
	mesh := display_mesh.NewDisplayMesh(backend,
		display_mesh.WithLabel(m.Name()),
		display_mesh.WithLayout(vertex_layout.PositionTexCoord4D()),
		display_mesh.WithTopology(topology),
	)
	if err := m.Upload(mesh); err != nil {
		return nil, nil, err
	}
	return mesh, backend, nil
}

func runHypercube(logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("hypercube", flag.ExitOnError)
	out := fs.String("o", "hypercube"+loader.ModelFileExt, "Output model file")
	size := fs.Float64("size", 1, "Edge length")
	scenePath := fs.String("scene", "", "Also write the demo scene configuration to this YAML file")
	fs.Parse(args)

	if *size <= 0 {
		return fmt.Errorf("size must be positive, got %v", *size)
	}

	l := loader.NewLoader(loader.BackendTypeModelFile, loader.WithLogger(logger))
	if err := l.Save(*out, model.Hypercube(float32(*size))); err != nil {
		return err
	}

	if *scenePath != "" {
		f, err := os.Create(*scenePath)
		if err != nil {
			return fmt.Errorf("create scene file: %w", err)
		}
		defer f.Close()

		cfg := scene.DemoConfig()
		cfg.Objects[0].Model = *out
		if err := scene.WriteConfig(f, cfg); err != nil {
			return err
		}
		logger.Info("scene written", zap.String("path", *scenePath))
	}
	return nil
}

func runInspect(logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	topologyName := fs.String("topology", "tetrahedra", "Primitive topology: triangles, lines or tetrahedra")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: inspect [-topology name] <model file>")
	}
	topology, err := parseTopology(*topologyName)
	if err != nil {
		return err
	}

	l := loader.NewLoader(loader.BackendTypeModelFile, loader.WithLogger(logger))
	m, err := l.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := loader.ValidateIndices(m); err != nil {
		return err
	}

	mesh, backend, err := uploadHost(m, topology)
	if err != nil {
		return err
	}
	defer mesh.Destroy()

	lo, hi := model.ComputeBounds(m.Vertices())
	fmt.Printf("model:     %s\n", m.Name())
	fmt.Printf("vertices:  %d (%d bytes)\n", mesh.VertexCount(), len(backend.Vertices()))
	fmt.Printf("indices:   %d (%d %s primitives)\n", mesh.IndexCount(), int(mesh.IndexCount())/topology.GroupSize(), topology)
	fmt.Printf("bounds:    %v .. %v\n", lo, hi)
	fmt.Printf("radius:    %g\n", m.BoundingRadius())

	layout, err := vertex_layout.WGPUBufferLayout(mesh.Layout())
	if err != nil {
		return err
	}
	fmt.Printf("stride:    %d\n", layout.ArrayStride)
	for _, attr := range layout.Attributes {
		fmt.Printf("  @location(%d) offset %d format %v\n", attr.ShaderLocation, attr.Offset, attr.Format)
	}
	return nil
}

// meshFactory resolves configured models through l and uploads them into host meshes.
func meshFactory(l loader.Loader) scene.MeshFactory {
	return func(obj scene.ObjectConfig) (display_mesh.DisplayMesh, error) {
		var m model.Model
		if obj.Model == scene.ModelHypercube {
			m = model.Hypercube(obj.Size)
		} else {
			var err error
			if m, err = l.Load(obj.Model); err != nil {
				return nil, err
			}
			if err := loader.ValidateIndices(m); err != nil {
				return nil, err
			}
		}
		mesh, _, err := uploadHost(m, display_mesh.TopologyTetrahedra)
		return mesh, err
	}
}

func printUniforms(s scene.Scene, asHex bool) {
	for i, u := range s.Uniforms() {
		obj, _ := s.Object(i)
		fmt.Printf("%s:\n", obj.Name)
		if asHex {
			fmt.Println(hex.EncodeToString(u.Marshal()))
			continue
		}
		for r := range 4 {
			fmt.Printf("  [% 10.4f % 10.4f % 10.4f % 10.4f]  % 10.4f\n",
				u.LinearMap[r], u.LinearMap[4+r], u.LinearMap[8+r], u.LinearMap[12+r], u.Translation[r])
		}
	}
}

func runUniforms(logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("uniforms", flag.ExitOnError)
	scenePath := fs.String("scene", "", "Scene configuration file (defaults to the demo scene)")
	asHex := fs.Bool("hex", false, "Print the marshaled uniform blocks as hex")
	fs.Parse(args)

	cfg := scene.DemoConfig()
	if *scenePath != "" {
		var err error
		if cfg, err = scene.LoadConfig(*scenePath); err != nil {
			return err
		}
	}

	l := loader.NewLoader(loader.BackendTypeModelFile, loader.WithLogger(logger))
	s, err := scene.NewSceneFromConfig(cfg, meshFactory(l), scene.WithLogger(logger))
	if err != nil {
		return err
	}
	defer s.Destroy()

	printUniforms(s, *asHex)
	return nil
}

func runFrames(logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("frames", flag.ExitOnError)
	frames := fs.Int("n", 100, "Number of frames")
	keys := fs.String("keys", "", "Keys held every frame, e.g. \"as\" or \"d \"")
	asHex := fs.Bool("hex", false, "Print the final uniform block as hex")
	fs.Parse(args)

	if *frames < 0 {
		return fmt.Errorf("frame count must not be negative, got %d", *frames)
	}

	mesh, backend, err := uploadHost(model.Hypercube(1), display_mesh.TopologyTetrahedra)
	if err != nil {
		return err
	}

	state := scene.DemoState{}
	s := scene.NewScene("demo",
		scene.WithView(scene.DemoView()),
		scene.WithObjects(scene.Object{Name: scene.ModelHypercube, Transform: state.Model(), Mesh: mesh}),
		scene.WithLogger(logger),
	)
	defer s.Destroy()

	pressed := common.ParseKeySet(*keys).Pressed
	prof := profiler.NewProfiler(profiler.WithLogger(logger))
	pb := progressbar.Default(int64(*frames))
	defer pb.Close()
	for range *frames {
		state.Step(scene.PollControls(pressed))
		if err := s.SetTransform(0, state.Model()); err != nil {
			return err
		}
		if err := s.Draw(nil); err != nil {
			return err
		}
		prof.Tick()
		pb.Add(1)
	}

	logger.Info("frames complete",
		zap.Int("frames", *frames),
		zap.Int("draws", len(backend.Draws())),
		zap.Float64("angle1", state.Angle1),
		zap.Float64("angle2", state.Angle2),
		zap.Float64("xdist", state.XDist),
	)
	printUniforms(s, *asHex)
	return nil
}
