package graphics

import (
	"fmt"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"lookbook/internal/asset"
	"lookbook/internal/primitives"
	"lookbook/internal/scene"
)

// cached holds the GPU mesh and lit material for one placeholder geometry.
// offset shifts the mesh in model space so it is centered on the origin.
type cached struct {
	mesh   rl.Mesh
	mtl    rl.Material
	offset mgl32.Vec3
}

// Registry owns GPU resources shared by every canvas: primitive meshes keyed by their
// geometry, loaded models keyed by file, and the lit shader. Resources are created on
// first use so allocation happens after the window/OpenGL context exists.
type Registry struct {
	meshes map[primitives.Geometry]cached
	models map[string]rl.Model
	failed map[string]bool
	shader rl.Shader
	loaded bool

	viewPos  [3]float32
	lightDir [3]float32
	ambient  [4]float32
	light    [3]float32
	lightInt float32
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		meshes:   make(map[primitives.Geometry]cached),
		models:   make(map[string]rl.Model),
		failed:   make(map[string]bool),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

func (r *Registry) litShader() rl.Shader {
	if !r.loaded {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
		r.loaded = true
	}
	return r.shader
}

// SetLights sets the camera position and scene lights for the following draws. Call once
// per canvas per frame before drawing objects.
func (r *Registry) SetLights(viewPos mgl32.Vec3, s *scene.Scene) {
	r.viewPos = [3]float32(viewPos)
	r.ambient = [4]float32{0, 0, 0, 1}
	if a := s.Ambient; a != nil {
		r.ambient = [4]float32{
			float32(a.Color.R) / 255 * a.Intensity,
			float32(a.Color.G) / 255 * a.Intensity,
			float32(a.Color.B) / 255 * a.Intensity,
			1,
		}
	}
	r.light, r.lightInt = [3]float32{}, 0
	if len(s.Directional) > 0 {
		d := s.Directional[0]
		r.lightDir = [3]float32(d.Direction())
		r.light = [3]float32{float32(d.Color.R) / 255, float32(d.Color.G) / 255, float32(d.Color.B) / 255}
		r.lightInt = d.Intensity
	}
}

// genMesh builds the raylib mesh for g (already defaulted) and the offset that centers it.
// Raylib cylinders and cones stand on Y=0; everything else is generated centered. Shapes
// raylib cannot generate are tessellated by primitives and uploaded as-is.
func genMesh(g primitives.Geometry) (rl.Mesh, mgl32.Vec3, error) {
	switch g.Kind {
	case primitives.Box:
		return rl.GenMeshCube(g.Size[0], g.Size[1], g.Size[2]), mgl32.Vec3{}, nil
	case primitives.Plane:
		return rl.GenMeshPlane(g.Size[0], g.Size[2], 1, 1), mgl32.Vec3{}, nil
	case primitives.Sphere:
		return rl.GenMeshSphere(g.Radius, g.Segments/2, g.Segments), mgl32.Vec3{}, nil
	case primitives.Cylinder:
		return rl.GenMeshCylinder(g.Radius, g.Height, g.Segments), mgl32.Vec3{0, -g.Height / 2, 0}, nil
	case primitives.Cone:
		return rl.GenMeshCone(g.Radius, g.Height, g.Segments), mgl32.Vec3{0, -g.Height / 2, 0}, nil
	case primitives.Torus:
		// Raylib sizes a torus by its ring diameter and the tube-to-ring ratio.
		ratio := float32(1)
		if g.Radius > 0 {
			ratio = g.Tube / g.Radius
		}
		return rl.GenMeshTorus(ratio, 2*g.Radius, g.Segments, g.Segments/2), mgl32.Vec3{}, nil
	}
	if positions, normals, ok := g.Triangles(); ok && len(positions) > 0 {
		return uploadTriangles(positions, normals), mgl32.Vec3{}, nil
	}
	return rl.Mesh{}, mgl32.Vec3{}, fmt.Errorf("graphics: no mesh for %q", g.Kind)
}

// uploadTriangles builds a non-indexed mesh from flat xyz lists and uploads it.
func uploadTriangles(positions, normals []float32) rl.Mesh {
	n := len(positions) / 3
	texcoords := make([]float32, n*2)
	mesh := rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(n / 3),
		Vertices:      &positions[0],
		Normals:       &normals[0],
		Texcoords:     &texcoords[0],
	}
	rl.UploadMesh(&mesh, false)
	return mesh
}

func (r *Registry) ensure(g primitives.Geometry) (cached, bool) {
	if c, ok := r.meshes[g]; ok {
		return c, true
	}
	mesh, offset, err := genMesh(g)
	if err != nil {
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := r.litShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl, offset: offset}
	r.meshes[g] = c
	return c, true
}

// setUniforms writes lights and material terms (cgo-safe: local arrays).
func (r *Registry) setUniforms(shader rl.Shader, m primitives.Standard) {
	if !rl.IsShaderValid(shader) {
		return
	}
	power, strength, diffuse := m.Phong()
	viewPos := r.viewPos
	lightDir := r.lightDir
	amb := r.ambient
	lightColor := r.light
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{r.lightInt}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{power}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{strength}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "diffuseScale"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{diffuse}, rl.ShaderUniformFloat)
	}
}

// DrawMesh draws a placeholder mesh with the node transform world.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) DrawMesh(m *primitives.Mesh, world mgl32.Mat4) {
	c, ok := r.ensure(m.Geometry.WithDefaults())
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(m.Material.Color.R, m.Material.Color.G, m.Material.Color.B, m.Material.Color.A)
	}
	r.setUniforms(c.mtl.Shader, m.Material)
	transform := world
	if c.offset != (mgl32.Vec3{}) {
		transform = world.Mul4(mgl32.Translate3D(c.offset[0], c.offset[1], c.offset[2]))
	}
	rl.DrawMesh(c.mesh, c.mtl, toMatrix(transform))
}

// modelFinish is the surface used for loaded models; their colors and textures come from
// the file.
var modelFinish = primitives.Standard{Metalness: primitives.DefaultMetalness, Roughness: primitives.DefaultRoughness}

// DrawModel draws a loaded model with the node transform world. The file is uploaded on
// first use and its materials switched to the lit shader; a file raylib cannot load is
// skipped from then on.
func (r *Registry) DrawModel(m *asset.Model, world mgl32.Mat4) {
	if r.failed[m.Path] {
		return
	}
	model, ok := r.models[m.Path]
	if !ok {
		model = rl.LoadModel(m.Path)
		if model.MeshCount == 0 {
			r.failed[m.Path] = true
			return
		}
		if shader := r.litShader(); rl.IsShaderValid(shader) {
			lightModel(model, shader)
		}
		r.models[m.Path] = model
	}
	if mats := modelMaterials(model); len(mats) > 0 {
		r.setUniforms(mats[0].Shader, modelFinish)
	}
	model.Transform = toMatrix(world)
	rl.DrawModel(model, rl.NewVector3(0, 0, 0), 1, rl.White)
}

// lightModel switches every material of model to shader.
func lightModel(model rl.Model, shader rl.Shader) {
	mats := modelMaterials(model)
	for i := range mats {
		mats[i].Shader = shader
	}
}

// modelMaterials views the model's C material array as a slice.
func modelMaterials(m rl.Model) []rl.Material {
	if m.Materials == nil || m.MaterialCount <= 0 {
		return nil
	}
	return unsafe.Slice(m.Materials, m.MaterialCount)
}

// Unload releases every mesh, model and the shader.
func (r *Registry) Unload() {
	for g, c := range r.meshes {
		rl.UnloadMesh(&c.mesh)
		delete(r.meshes, g)
	}
	for path, m := range r.models {
		rl.UnloadModel(m)
		delete(r.models, path)
	}
	if r.loaded {
		rl.UnloadShader(r.shader)
		r.loaded = false
	}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float diffuseScale;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * diffuseScale * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = mix(lightColor, tint.rgb * lightColor, 1.0 - diffuseScale) * spec * lightIntensity * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)
