package config

type HashAlgorithm string

const (
	SHA256     HashAlgorithm = "sha256"
	HMACSHA256 HashAlgorithm = "hmac-sha256"
	MD5        HashAlgorithm = "md5"
)
