// Package ssl installs Let's Encrypt certificates through certbot's Apache
// plugin.
//
// Certbot is run as a plain argument vector, never through a shell. The base
// command comes from configuration and is extended with:
//
//	-d <domain> --non-interactive --agree-tos -m <email> --redirect
//
// # Basic Usage
//
//	inst := ssl.NewInstaller([]string{"sudo", "certbot", "--apache"},
//	    ssl.WithTimeout(5*time.Minute))
//
//	ok, msg := inst.Install(ctx, "example.com", "admin@example.com")
//
// Install never returns an error. A failed run is reported through ok=false
// and a message holding certbot's stderr, or "System Error: ..." when the
// command could not be started or ran past its timeout.
//
// # Certificate Paths
//
// Certificates are stored in Let's Encrypt's standard directory:
//
//	/etc/letsencrypt/live/{domain}/fullchain.pem  (certificate chain)
//	/etc/letsencrypt/live/{domain}/privkey.pem    (private key)
//
// # Testing
//
// WithExecutor replaces the system executor:
//
//	mockExec := &executor.MockExecutor{}
//	inst := ssl.NewInstaller(base, ssl.WithExecutor(mockExec))
package ssl
