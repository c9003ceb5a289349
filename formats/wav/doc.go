// SPDX-License-Identifier: EPL-2.0

// Package wav writes audio.Source output as PCM WAV files.
//
// Encoding is done by github.com/go-audio/wav. Any audio.Source can be
// written, at 8, 16, 24 or 32 bits per sample:
//
//	out, _ := os.Create("output.wav")
//	defer out.Close()
//
//	frames, err := wav.WriteSource(out, src, 16)
//	if err != nil {
//	    // Handle error
//	}
//
// The output needs to be an io.WriteSeeker because the RIFF sizes are
// patched into the header once all samples are written.
//
// # Sample Conversion
//
// Float samples are clamped to [-1, 1] and scaled so that 1.0 maps to the
// largest positive value of the target bit depth. 8-bit output is stored
// unsigned, as WAV requires.
package wav
