/*
Package playback advances frame indices over generated traces.

A Scheduler holds one track per trace. Each track moves through the states
stopped, playing, paused and finished under the transport controls Play,
Pause, Step, Seek, SetSpeed and Reset. In independent mode every track owns
its own timer and speed; in synced mode one shared timer advances every
playing track by one frame per tick until all of them reach their last
frame.

Timers come from a Clock. RealClock wraps time.AfterFunc; ManualClock fires
timers only when advanced, for tests and headless playback.
*/
package playback
