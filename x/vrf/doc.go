/*
Package vrf keeps a random value per user account. Randomness is produced off
chain and delivered with a callback that only the configured VRF identity is
allowed to sign.
*/
package vrf
