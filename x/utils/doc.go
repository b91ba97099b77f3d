/*
Package utils holds the decorators every transaction passes through before
it reaches its handler.
*/
package utils
