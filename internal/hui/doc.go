// Package hui is a small 2D engine for learner sketches.
//
// A Game owns a Scene of things. Each frame it ticks them, steps an
// optional physics World, draws them onto layered surfaces and composites
// the layers onto an output surface. Things opt into behavior through the
// Setupper, Ticker, Drawer and DebugDrawer interfaces.
//
// Motion is integrated by Body with a fixed timestep and an accumulator;
// reads are interpolated between the last two substeps. Shape adds box,
// disc and point geometry, and Collide tests any pair of shapes.
package hui
