package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/holyfoxgames-hue/cubicmage/internal/config"
	"github.com/holyfoxgames-hue/cubicmage/internal/graphics"
	"github.com/holyfoxgames-hue/cubicmage/internal/mask"
	"github.com/holyfoxgames-hue/cubicmage/internal/meshing"
	"github.com/holyfoxgames-hue/cubicmage/internal/world"
	"github.com/holyfoxgames-hue/cubicmage/internal/worldgen"
)

func init() {
	runtime.LockOSThread()
}

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

out vec3 vNormal;
out vec3 vColor;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    vNormal = mat3(model) * aNormal;
    vColor = aColor;
}`

const fragmentShaderSource = `#version 410 core
in vec3 vNormal;
in vec3 vColor;

uniform vec3 lightDir;

out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), -normalize(lightDir)), 0.0);
    vec3 lit = vColor * (0.45 + 0.55 * diffuse);
    FragColor = vec4(lit, 1.0);
}`

// chunkMesh is one uploaded chunk: a VAO with position/normal/color VBOs
// plus an element buffer. elemType is UNSIGNED_SHORT or UNSIGNED_INT
// depending on how many vertices the mesh carries.
type chunkMesh struct {
	vao      uint32
	vbos     [3]uint32
	ebo      uint32
	count    int32
	elemType uint32
	model    mgl32.Mat4
}

func main() {
	configPath := flag.String("config", "", "path to YAML world config")
	worldPath := flag.String("world", "", "load a saved world instead of generating")
	seed := flag.Int64("seed", 0, "override config seed (0 keeps config value)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var w *world.World
	if *worldPath != "" {
		loaded, err := world.LoadFile(*worldPath)
		if err != nil {
			log.Fatalf("load world: %v", err)
		}
		w = loaded
	} else {
		generated, err := generate(cfg)
		if err != nil {
			log.Fatalf("generate world: %v", err)
		}
		w = generated
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		log.Fatalf("create window: %v", err)
	}

	shader, err := graphics.NewShaderFromSource(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		log.Fatalf("compile shader: %v", err)
	}

	meshes := uploadWorld(w, cfg)
	log.Printf("uploaded %d chunk meshes", len(meshes))

	center := mgl32.Vec3{
		float32(w.SizeX()) / 2,
		float32(w.ChunkHeight) / 2,
		float32(w.SizeZ()) / 2,
	}
	distance := float32(w.SizeX()+w.SizeZ()) * 0.75
	width, height := window.GetFramebufferSize()
	camera := graphics.NewOrbitCamera(center, distance, width, height)

	installInput(window, camera)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)

	for !window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		shader.Use()
		projection := camera.GetProjectionMatrix()
		view := camera.GetViewMatrix()
		shader.SetMatrix4("projection", &projection[0])
		shader.SetMatrix4("view", &view[0])
		shader.SetVector3("lightDir", -0.4, -1.0, -0.3)

		for _, m := range meshes {
			shader.SetMatrix4("model", &m.model[0])
			gl.BindVertexArray(m.vao)
			gl.DrawElements(gl.TRIANGLES, m.count, m.elemType, gl.PtrOffset(0))
		}
		gl.BindVertexArray(0)

		window.SwapBuffers()
		glfw.PollEvents()
	}

	for _, m := range meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(3, &m.vbos[0])
		gl.DeleteBuffers(1, &m.ebo)
	}
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(1200, 800, "worldview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}
	glfw.SwapInterval(1)
	return window, nil
}

func generate(cfg config.Config) (*world.World, error) {
	rect := worldgen.MaskRect{
		SizeX: float64(cfg.World.ChunksX * cfg.World.ChunkSize),
		SizeZ: float64(cfg.World.ChunksZ * cfg.World.ChunkSize),
	}
	samplers := worldgen.Samplers{}
	if cfg.Masks.BiomePath != "" {
		bm, err := mask.LoadBiomeMask(cfg.Masks.BiomePath, cfg.Masks.GridW, cfg.Masks.GridH,
			rect, cfg.Terrain.VoidThreshold)
		if err != nil {
			return nil, err
		}
		samplers.Biomes = bm
	}
	if cfg.Masks.FeaturePath != "" {
		fm, err := mask.LoadFeatureMask(cfg.Masks.FeaturePath, cfg.Masks.GridW, cfg.Masks.GridH, rect)
		if err != nil {
			return nil, err
		}
		samplers.Features = fm
	}
	return worldgen.NewGenerator(cfg, samplers).Generate(), nil
}

func uploadWorld(w *world.World, cfg config.Config) []*chunkMesh {
	opts := meshing.Options{
		Seed:           w.Seed,
		FloatingIsland: cfg.Terrain.FloatingIsland,
		BaseTintBelow:  w.ChunkHeight * 35 / 100,
	}
	var meshes []*chunkMesh
	for _, c := range w.Chunks() {
		mesh := meshing.Build(c, opts)
		if mesh.VertexCount() == 0 {
			continue
		}
		uploaded := uploadMesh(mesh)
		uploaded.model = mgl32.Translate3D(
			float32(c.CX*w.ChunkSize), 0, float32(c.CZ*w.ChunkSize))
		meshes = append(meshes, uploaded)
	}
	return meshes
}

func uploadMesh(mesh *meshing.Mesh) *chunkMesh {
	m := &chunkMesh{count: int32(mesh.TriangleCount() * 3)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(3, &m.vbos[0])

	attribs := [3][]mgl32.Vec3{mesh.Positions, mesh.Normals, mesh.Colors}
	for i, data := range attribs {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*3*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if mesh.Wide() {
		idx := mesh.Indices32()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*4, gl.Ptr(idx), gl.STATIC_DRAW)
		m.elemType = gl.UNSIGNED_INT
	} else {
		idx := mesh.Indices16()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*2, gl.Ptr(idx), gl.STATIC_DRAW)
		m.elemType = gl.UNSIGNED_SHORT
	}

	gl.BindVertexArray(0)
	return m
}

func installInput(window *glfw.Window, camera *graphics.OrbitCamera) {
	var dragging bool
	var lastX, lastY float64

	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			dragging = action == glfw.Press
		}
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if dragging {
			camera.Orbit(float32(x-lastX)*0.3, float32(y-lastY)*0.3)
		}
		lastX, lastY = x, y
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		camera.Zoom(float32(yoff) * camera.Distance * 0.1)
	})
	window.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if height > 0 {
			camera.AspectRatio = float32(width) / float32(height)
		}
	})
}
