// Package gl holds minimal OpenGL bindings for capability queries.
// Based on https://github.com/go-gl/gl, but resolved entirely through
// a proc-address callback so the same binding works against any
// negotiated GL or GLES version instead of a pinned core profile.
package gl

/*
#ifndef APIENTRY
#define APIENTRY
#endif
#ifndef APIENTRYP
#define APIENTRYP APIENTRY*
#endif

typedef unsigned int GLenum;
typedef unsigned int GLuint;
typedef int GLint;
typedef unsigned char GLubyte;

typedef const GLubyte *(APIENTRYP GPGETSTRING)(GLenum name);
typedef const GLubyte *(APIENTRYP GPGETSTRINGI)(GLenum name, GLuint index);
typedef void (APIENTRYP GPGETINTEGERV)(GLenum pname, GLint *data);
typedef GLenum (APIENTRYP GPGETERROR)(void);

static const GLubyte *getString(GPGETSTRING ptr, GLenum name) { return (*ptr)(name); }
static const GLubyte *getStringi(GPGETSTRINGI ptr, GLenum name, GLuint index) { return (*ptr)(name, index); }
static void getIntegerv(GPGETINTEGERV ptr, GLenum pname, GLint *data) { (*ptr)(pname, data); }
static GLenum getError(GPGETERROR ptr) { return (*ptr)(); }
*/
import "C"

import (
	"errors"
	"unsafe"
)

const (
	VENDOR   uint32 = 0x1F00
	RENDERER uint32 = 0x1F01
	VERSION  uint32 = 0x1F02

	EXTENSIONS     uint32 = 0x1F03
	NUM_EXTENSIONS uint32 = 0x821D

	MAJOR_VERSION uint32 = 0x821B
	MINOR_VERSION uint32 = 0x821C

	CONTEXT_PROFILE_MASK              uint32 = 0x9126
	CONTEXT_CORE_PROFILE_BIT          uint32 = 0x0001
	CONTEXT_COMPATIBILITY_PROFILE_BIT uint32 = 0x0002

	NO_ERROR uint32 = 0
)

var (
	gpGetString   C.GPGETSTRING
	gpGetStringi  C.GPGETSTRINGI
	gpGetIntegerv C.GPGETINTEGERV
	gpGetError    C.GPGETERROR
)

// InitWithProcAddrFunc loads the query functions from the current
// context. glGetStringi only exists since 3.0, so it stays optional.
func InitWithProcAddrFunc(getProcAddr func(name string) unsafe.Pointer) error {
	gpGetString = C.GPGETSTRING(getProcAddr("glGetString"))
	if gpGetString == nil {
		return errors.New("glGetString is missing")
	}
	gpGetIntegerv = C.GPGETINTEGERV(getProcAddr("glGetIntegerv"))
	if gpGetIntegerv == nil {
		return errors.New("glGetIntegerv is missing")
	}
	gpGetError = C.GPGETERROR(getProcAddr("glGetError"))
	if gpGetError == nil {
		return errors.New("glGetError is missing")
	}
	gpGetStringi = C.GPGETSTRINGI(getProcAddr("glGetStringi"))
	return nil
}

// GetString returns the driver string for name, or "" when the driver
// answers NULL.
func GetString(name uint32) string {
	s := C.getString(gpGetString, C.GLenum(name))
	if s == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(s)))
}

func HasGetStringi() bool { return gpGetStringi != nil }

func GetStringi(name, index uint32) string {
	s := C.getStringi(gpGetStringi, C.GLenum(name), C.GLuint(index))
	if s == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(s)))
}

func GetIntegerv(pname uint32) int32 {
	var v C.GLint
	C.getIntegerv(gpGetIntegerv, C.GLenum(pname), &v)
	return int32(v)
}

func GetError() uint32 { return uint32(C.getError(gpGetError)) }
