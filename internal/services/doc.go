// Package services implements the QQ Music web API call sites used by qqm.
//
// # Collaborators
//
// Requests to musics.fcg are signed and encrypted by code that lives outside this module.
// [QQMusicService] receives them as a [Signer] and a [Cipher]; the helper package provides a
// process-backed implementation. Credentials are passed explicitly through [Credentials].
//
// # Call template
//
// Every authenticated endpoint follows the same steps:
//   - Check credentials, failing with [shared.ErrMissingCredentials] before any network activity
//   - Render a fixed JSON template by positional substitution
//   - Sign the rendered payload (signature goes into the URL) and encrypt it (request body)
//   - POST to musics.fcg with a fixed header set
//   - Decrypt the response and decode it with [codec.Decode]
//
// # Known limitations
//
// Playlist mutations report success when the decrypted response is longer than
// [MutationSuccessThreshold] characters. The upstream code is logged at debug level but not
// used to decide the outcome.
//
// Decode failures never surface: the result type is returned zero-valued and the failure is
// logged. Transport failures are returned wrapped, and non-2xx responses wrap [shared.ErrAPIRequest].
package services
