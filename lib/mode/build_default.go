//go:build !production

package mode

const buildMode = Development
