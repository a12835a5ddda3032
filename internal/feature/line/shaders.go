package line

// Attribute and uniform names shared by the shaders and the program setup.
const (
	uniformModelView  = "modelViewMatrix"
	uniformProjection = "projectionMatrix"
	uniformPixelWidth = "pixelWidth"
)

// vertexShader extrudes each expanded vertex perpendicular to the bisector
// of its incoming and outgoing segments. Locations are bound from the
// program's attribute list, so the inputs carry no layout qualifiers.
// Displace is the CPU copy of this shader and holds its tests; keep the two
// in step.
const vertexShader = `
#version 410 core

in vec3 pos;
in float strokeWidth;
in vec3 strokeColor;
in float strokeOpacity;
in vec3 prev;
in vec3 next;
in float offset;

uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;
uniform float pixelWidth;

out vec3 strokeColorVar;
out float strokeOpacityVar;

const float epsilon = 1e-4;
const float pi = 3.14159265358979;

vec4 project(vec3 p) {
	vec4 c = projectionMatrix * modelViewMatrix * vec4(p, 1.0);
	if (c.w != 0.0) {
		c = c / c.w;
	}
	return c;
}

void main() {
	strokeColorVar = strokeColor;
	strokeOpacityVar = strokeOpacity;

	vec4 worldPos = project(pos);
	vec4 worldPrev = project(prev);
	vec4 worldNext = project(next);

	vec2 deltaPrev = worldPos.xy - worldPrev.xy;
	vec2 deltaNext = worldNext.xy - worldPos.xy;
	float anglePrev = atan(deltaPrev.y, deltaPrev.x);
	float angleNext = atan(deltaNext.y, deltaNext.x);
	if (abs(deltaPrev.x) < epsilon && abs(deltaPrev.y) < epsilon) {
		anglePrev = angleNext;
	}
	if (abs(deltaNext.x) < epsilon && abs(deltaNext.y) < epsilon) {
		angleNext = anglePrev;
	}
	if (angleNext - anglePrev > pi) {
		anglePrev += 2.0 * pi;
	} else if (anglePrev - angleNext > pi) {
		angleNext += 2.0 * pi;
	}

	float angle = (anglePrev + angleNext) / 2.0;
	float distance = offset * strokeWidth * pixelWidth / cos(anglePrev - angle);
	worldPos.x += distance * sin(angle);
	worldPos.y -= distance * cos(angle);
	gl_Position = worldPos;
}
`

const fragmentShader = `
#version 410 core

in vec3 strokeColorVar;
in float strokeOpacityVar;

out vec4 fragColor;

void main() {
	fragColor = vec4(strokeColorVar, strokeOpacityVar);
}
`
