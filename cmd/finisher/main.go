// finisher is the command-line front end of the payroll finisher: it runs
// the same read -> allocate -> write pipeline as the HTTP service, but on
// local files.
package main

func main() {
	Execute()
}
