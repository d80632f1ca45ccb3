package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"
)

var dir = flag.String("dir", "", "Directory where the keys will be stored")

func writePem(filename string, block *pem.Block) {
	file, err := os.Create(filename)
	if err != nil {
		log.Fatalln(err)
	}
	if err = pem.Encode(file, block); err != nil {
		log.Fatalln(err)
	}
	if err = file.Close(); err != nil {
		log.Fatalln(err)
	}
}

func main() {
	flag.Parse()
	if *dir == "" {
		log.Fatal("no directory was given")
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		log.Fatalln(err)
	}

	writePem(fmt.Sprintf("%s/%s", *dir, "private.pem"), &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	writePem(fmt.Sprintf("%s/%s", *dir, "public.pem"), &pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(&privateKey.PublicKey),
	})
}
