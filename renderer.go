package main

import (
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glzoom/fractal"
	"github.com/stewi1014/glzoom/programs"
)

// Renderer draws a program over the whole viewport of the current GL context.
type Renderer struct {
	vao              uint32
	vbo              uint32
	program          uint32
	precision        fractal.Precision
	vertexAttrib     uint32
	uniformLocations map[string]int32
}

// NewRenderer sets up buffers and loads program. gl.Init must already have
// run on the current context.
func NewRenderer(program programs.Program) (*Renderer, error) {
	r := &Renderer{}

	gl.DebugMessageCallback(glDebugMessage, nil)
	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	// one triangle covering the viewport
	verticies := []float32{
		-3, -2,
		0, 3,
		3, -2,
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verticies)*4, gl.Ptr(verticies), gl.STATIC_DRAW)

	if err := r.LoadProgram(program); err != nil {
		return nil, err
	}
	return r, nil
}

func glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	severityStr := "unknown"
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		severityStr = "high"
	case gl.DEBUG_SEVERITY_LOW:
		severityStr = "low"
	case gl.DEBUG_SEVERITY_MEDIUM:
		severityStr = "medium"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		// driver chatter about buffer placement and the like
		return
	}

	sourceStr := "unknownSource"
	switch source {
	case gl.DEBUG_SOURCE_API:
		sourceStr = "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		sourceStr = "application"
	case gl.DEBUG_SOURCE_OTHER:
		sourceStr = "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		sourceStr = "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		sourceStr = "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		sourceStr = "windowSystem"
	}

	typeStr := "unknownType"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "depreciatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		typeStr = "marker"
	case gl.DEBUG_TYPE_OTHER:
		typeStr = "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_POP_GROUP:
		typeStr = "popGroup"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		typeStr = "pushGroup"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	}

	log.Printf("%v(%v): %v; %v\n", sourceStr, severityStr, typeStr, message)
}

// Draw shades one frame with u. Errors raised by GL while drawing are
// returned so the caller can drop the frame.
func (r *Renderer) Draw(u programs.Uniforms) error {
	if r.program == 0 {
		return programs.ErrNoProgram
	}

	gl.Viewport(0, 0, int32(u.Resolution[0]), int32(u.Resolution[1]))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.program)
	r.loadUniforms(&u)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x drawing frame", code)
	}
	return nil
}

func (r *Renderer) loadUniforms(u *programs.Uniforms) {
	v := reflect.ValueOf(u).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)

		loc, ok := r.uniformLocations[v.Type().Field(i).Tag.Get("uniform")]
		if !ok || loc < 0 {
			// optimised out of the shader
			continue
		}
		ptr := f.Addr().UnsafePointer()

		count := int32(1)

	SwitchElem:
		switch f.Type() {
		// Natural Array types
		case reflect.TypeOf(mgl32.Vec2{}):
			gl.Uniform2fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl32.Vec3{}):
			gl.Uniform3fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl32.Vec4{}):
			gl.Uniform4fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl64.Vec2{}):
			if r.precision == fractal.Single {
				gl.Uniform2fv(loc, count, &downcast(ptr, 2*count)[0])
			} else {
				gl.Uniform2dv(loc, count, (*float64)(ptr))
			}
			continue
		case reflect.TypeOf(mgl32.Mat4{}):
			gl.UniformMatrix4fv(loc, count, false, (*float32)(ptr))
			continue
		case reflect.TypeOf(int32(0)):
			gl.Uniform1iv(loc, count, (*int32)(ptr))
			continue
		case reflect.TypeOf(uint32(0)):
			gl.Uniform1uiv(loc, count, (*uint32)(ptr))
			continue
		case reflect.TypeOf(float32(0)):
			gl.Uniform1fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(float64(0)):
			if r.precision == fractal.Single {
				gl.Uniform1fv(loc, count, &downcast(ptr, count)[0])
			} else {
				gl.Uniform1dv(loc, count, (*float64)(ptr))
			}
			continue
		}

		if f.Kind() == reflect.Array {
			count = int32(f.Len())
			f = f.Index(0)
			goto SwitchElem
		}

		log.Printf("unsupported uniform type %v", f.Type())
	}
}

// downcast copies n float64s at ptr into float32s for single precision
// programs, which declare those uniforms as float.
func downcast(ptr unsafe.Pointer, n int32) []float32 {
	src := unsafe.Slice((*float64)(ptr), n)
	dst := make([]float32, n)
	for i, v := range src {
		dst[i] = float32(v)
	}
	return dst
}

// LoadProgram compiles and links program, replacing the current one.
func (r *Renderer) LoadProgram(program programs.Program) error {
	vertexShader, err := compileShader(program.VertexShader+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(program.FragmentShader+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fragmentShader)

	glProgram := gl.CreateProgram()
	gl.AttachShader(glProgram, vertexShader)
	gl.AttachShader(glProgram, fragmentShader)
	gl.BindFragDataLocation(glProgram, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(glProgram)

	var status int32
	gl.GetProgramiv(glProgram, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(glProgram, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(glProgram, l, nil, gl.Str(log))
		gl.DeleteProgram(glProgram)
		return fmt.Errorf("failed to link program %v: %v", program.Name, log)
	}

	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	r.program = glProgram
	r.precision = program.Precision
	gl.UseProgram(r.program)

	r.uniformLocations = make(map[string]int32)
	t := reflect.TypeOf(programs.Uniforms{})
	for i := 0; i < t.NumField(); i++ {
		name := strings.ToLower(t.Field(i).Tag.Get("uniform"))
		r.uniformLocations[name] = gl.GetUniformLocation(r.program, gl.Str(name+"\x00"))
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	r.vertexAttrib = uint32(gl.GetAttribLocation(r.program, gl.Str("vert\x00")))
	gl.EnableVertexAttribArray(r.vertexAttrib)
	gl.VertexAttribPointerWithOffset(r.vertexAttrib, 2, gl.FLOAT, false, 2*4, 0)

	log.Printf("loaded program %v (%v precision)", program.Name, program.Precision)
	return nil
}

func (r *Renderer) Delete() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, log)
	}

	return shader, nil
}
