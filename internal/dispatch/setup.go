// ABOUTME: sclang code that installs the receivers for play and stop messages.
// ABOUTME: Users evaluate it once per interpreter session.

package dispatch

// SetupCode registers permanent OSCdefs so the receivers survive Cmd-Period.
const SetupCode = `(
// Make OSCdefs permanent (survive CmdPeriod)
OSCdef(\snippetPlayer, { |msg|
    var code = msg[1].asString;
    code.interpret;
}, '/snippet/play').permanent_(true);

OSCdef(\snippetStop, {
    // Stop all patterns
    Pdef.all.do(_.stop);
    TempoClock.default.clear;

    // Free all synths
    Server.default.freeAll;

    "All sounds stopped".postln;
}, '/snippet/stop').permanent_(true);

"Snippet player ready! OSCdefs are permanent.".postln;
)
`
