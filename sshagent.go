package main

import (
	"log"
	"net"

	"golang.org/x/crypto/ssh/agent"
)

// checkSSHAgent warns when git over ssh is unlikely to authenticate without
// prompting. git handles the credentials, so this never fails.
func checkSSHAgent(env *childEnv) {
	sock := env.Get("SSH_AUTH_SOCK")
	if sock == "" {
		log.Printf("ssh: SSH_AUTH_SOCK not set, git may ask for your key passphrase")
		return
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		log.Printf("ssh: cannot reach agent at %s: %s", sock, err)
		return
	}
	defer conn.Close()

	keys, err := agent.NewClient(conn).List()
	if err != nil {
		log.Printf("ssh: failed to list agent keys: %s", err)
		return
	}
	if len(keys) == 0 {
		log.Printf("ssh: agent has no keys loaded, try ssh-add")
		return
	}
	log.Printf("ssh: agent ready with %d key(s)", len(keys))
}
